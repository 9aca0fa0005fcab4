// Package oaidc contains types for OAI-PMH records with unqualified Dublin
// Core metadata, the shape most endpoints serve for metadataPrefix=oai_dc.
package oaidc

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var (
	issnPattern = regexp.MustCompile(`[0-9]{4}-[0-9]{3}[0-9xX]`)
	yearPattern = regexp.MustCompile(`[12][0-9]{3}`)
)

// doiPreceding are some possible strings preceding a DOI
var doiPreceding = []string{
	"doi:",
	"http://doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"https://dx.doi.org/",
}

type Record struct {
	XMLName xml.Name `xml:"record"`
	Header  struct {
		Status     string   `xml:"status,attr"` // deleted
		Identifier string   `xml:"identifier"`  // oai:dnb.de/dnb:reiheC/12...
		Datestamp  string   `xml:"datestamp"`   // 2011-04-12, 2011-04-04, ...
		SetSpec    []string `xml:"setSpec"`     // dnb:reiheC, physics:opti...
	} `xml:"header"`
	Metadata struct {
		Dc struct {
			Title       []string `xml:"title"`       // Cascading of Liquid Cry...
			Creator     []string `xml:"creator"`     // Dawson, Nathan J., Kuzy...
			Contributor []string `xml:"contributor"` // Smith, Jane
			Subject     []string `xml:"subject"`     // Physics - Optics, Quant...
			Description []string `xml:"description"` // Photomechanical actuati...
			Publisher   []string `xml:"publisher"`   // De Gruyter Saur
			Date        []string `xml:"date"`        // 2010-07-22, 2010-12-08
			Type        []string `xml:"type"`        // text, book, article
			Format      []string `xml:"format"`      // application/pdf
			Identifier  []string `xml:"identifier"`  // http://arxiv.org/abs/10...
			Source      []string `xml:"source"`      // Journal of Optics 12 (2...
			Language    []string `xml:"language"`    // ger, eng, fr
			Relation    []string `xml:"relation"`    // info:eu-repo/semantics/...
			Rights      []string `xml:"rights"`      // http://creativecommons....
		} `xml:"dc"`
	} `xml:"metadata"`
}

// Deleted reports whether the record is an OAI tombstone.
func (r *Record) Deleted() bool {
	return r.Header.Status == "deleted"
}

// Title returns the first non-blank title.
func (r *Record) Title() string {
	for _, t := range r.Metadata.Dc.Title {
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
	}
	return ""
}

// Language returns the first non-blank language string, as found.
func (r *Record) Language() string {
	for _, l := range r.Metadata.Dc.Language {
		if s := strings.TrimSpace(l); s != "" {
			return s
		}
	}
	return ""
}

// Year returns a four digit publication year, or the empty string. Date
// strings come in many shapes, a full parse is tried first, then a plain
// four digit group.
func (r *Record) Year() string {
	for _, ds := range r.Metadata.Dc.Date {
		ds = strings.TrimSpace(ds)
		if ds == "" {
			continue
		}
		if t, err := dateparse.ParseAny(ds); err == nil {
			return t.Format("2006")
		}
		if m := yearPattern.FindString(ds); m != "" {
			return m
		}
	}
	return ""
}

// URL returns all http identifiers.
func (r *Record) URL() (result []string) {
	for _, f := range r.Metadata.Dc.Identifier {
		if strings.HasPrefix(f, "http") {
			result = append(result, f)
		}
	}
	return result
}

// DOI returns the first DOI found among identifiers.
func (r *Record) DOI() string {
	for _, f := range r.Metadata.Dc.Identifier {
		if strings.HasPrefix(f, "10.") {
			return f
		}
		for _, p := range doiPreceding {
			if strings.HasPrefix(f, p) {
				return strings.Replace(f, p, "", 1)
			}
		}
	}
	return ""
}

// ISBN returns candidate ISBN strings, unvalidated. Identifiers carry them
// with markers like "urn:isbn:..." or "ISBN 3-598-21500-9".
func (r *Record) ISBN() (result []string) {
	for _, f := range r.Metadata.Dc.Identifier {
		lower := strings.ToLower(f)
		if i := strings.Index(lower, "isbn"); i != -1 {
			if v := strings.Trim(f[i+len("isbn"):], ": "); v != "" {
				result = append(result, v)
			}
		}
	}
	return result
}

// ISSN returns candidate ISSN strings, unvalidated, from identifiers and
// source fields.
func (r *Record) ISSN() (result []string) {
	for _, f := range r.Metadata.Dc.Identifier {
		result = append(result, issnPattern.FindAllString(f, -1)...)
	}
	for _, f := range r.Metadata.Dc.Source {
		result = append(result, issnPattern.FindAllString(f, -1)...)
	}
	return result
}
