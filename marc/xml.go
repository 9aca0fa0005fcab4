package marc

import (
	"encoding/xml"
	"fmt"
	"io"
)

// CollectionNS is the MARCXML namespace, declared on the collection element.
const CollectionNS = "http://www.loc.gov/MARC21/slim"

type xmlSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

type xmlDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []xmlSubfield `xml:"subfield"`
}

type xmlControlField struct {
	Tag  string `xml:"tag,attr"`
	Data string `xml:",chardata"`
}

type xmlRecord struct {
	XMLName       xml.Name          `xml:"record"`
	Leader        string            `xml:"leader"`
	ControlFields []xmlControlField `xml:"controlfield"`
	DataFields    []xmlDataField    `xml:"datafield"`
}

// XML renders the record as a single MARCXML record element, control fields
// before data fields, without a namespace declaration. Both serializations
// carry the same field content.
func (r *Record) XML() ([]byte, error) {
	if len(r.leader) != LeaderLength {
		return nil, ErrInvalidLeader
	}
	leader := []byte(r.leader)
	leader[9] = 'a'
	xr := xmlRecord{Leader: string(leader)}
	for _, f := range r.Fields {
		if f.IsControl() {
			xr.ControlFields = append(xr.ControlFields, xmlControlField{
				Tag:  f.Tag,
				Data: f.Data,
			})
			continue
		}
		xf := xmlDataField{Tag: f.Tag, Ind1: indicator(f.Ind1), Ind2: indicator(f.Ind2)}
		for _, sf := range f.Subfields {
			xf.Subfields = append(xf.Subfields, xmlSubfield{Code: sf.Code, Value: sf.Value})
		}
		xr.DataFields = append(xr.DataFields, xf)
	}
	return xml.Marshal(xr)
}

// ParseXML decodes a single MARCXML record element, with or without a
// namespace prefix.
func ParseXML(p []byte) (*Record, error) {
	var xr xmlRecord
	if err := xml.Unmarshal(p, &xr); err != nil {
		return nil, err
	}
	if len(xr.Leader) != LeaderLength {
		return nil, ErrInvalidLeader
	}
	rec := &Record{leader: xr.Leader}
	for _, cf := range xr.ControlFields {
		rec.Fields = append(rec.Fields, Field{Tag: cf.Tag, Data: cf.Data})
	}
	for _, df := range xr.DataFields {
		f := Field{Tag: df.Tag, Ind1: indicator(df.Ind1), Ind2: indicator(df.Ind2)}
		for _, sf := range df.Subfields {
			f.Subfields = append(f.Subfields, Subfield{Code: sf.Code, Value: sf.Value})
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec, nil
}

// XMLWriter writes records into a collection envelope, one record per line.
type XMLWriter struct {
	w       io.Writer
	started bool
}

// NewXMLWriter returns a Writer for MARCXML output. The collection is opened
// lazily, so even a run without records produces a wellformed file on Close.
func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{w: w}
}

func (xw *XMLWriter) start() error {
	if xw.started {
		return nil
	}
	xw.started = true
	_, err := fmt.Fprintf(xw.w, "%s<collection xmlns=%q>\n", xml.Header, CollectionNS)
	return err
}

// WriteRecord writes a single record element.
func (xw *XMLWriter) WriteRecord(rec *Record) error {
	if err := xw.start(); err != nil {
		return err
	}
	b, err := rec.XML()
	if err != nil {
		return err
	}
	if _, err := xw.w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(xw.w, "\n")
	return err
}

// Close writes the closing envelope tag.
func (xw *XMLWriter) Close() error {
	if err := xw.start(); err != nil {
		return err
	}
	_, err := io.WriteString(xw.w, "</collection>\n")
	return err
}
