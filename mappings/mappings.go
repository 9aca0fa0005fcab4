// Package mappings holds the static per-format MARC constants used by the
// converters: leader templates, physical description codes, content and
// carrier types and local format codes. The table is read-only and shared by
// all sources.
package mappings

import "strings"

// Format groups the MARC constants for one material type.
type Format struct {
	// Leader is the 24 character leader template. Length and base address
	// are recomputed at serialization time.
	Leader string
	// Field007 is the physical description fixed field.
	Field007 string
	// Periodicity is the default 008/18 frequency code, used when a source
	// does not state one.
	Periodicity string
	// ContentType is the RDA content term for 336 $b.
	ContentType string
	// CarrierType is the RDA carrier term for 338 $b.
	CarrierType string
	// GenreForm and GenreSource fill 655 $a and $2.
	GenreForm   string
	GenreSource string
	// Physical is the local access code for 935 $b, print or online.
	Physical string
	// Special is the local format code for 935 $c.
	Special string
}

// Formats maps material type names to their MARC constants.
var Formats = map[string]Format{
	"Book": {
		Leader:      "     nam  22        4500",
		Field007:    "tu",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "nc",
		Physical:    "druck",
	},
	"E-Book": {
		Leader:      "     nam  22        4500",
		Field007:    "cr",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "cr",
		Physical:    "cofz",
		Special:     "lo",
	},
	"Journal": {
		Leader:      "     nas  22        4500",
		Field007:    "tu",
		Periodicity: "u",
		ContentType: "txt",
		CarrierType: "nc",
		Physical:    "druck",
	},
	"E-Journal": {
		Leader:      "     nas  22        4500",
		Field007:    "cr",
		Periodicity: "u",
		ContentType: "txt",
		CarrierType: "cr",
		Physical:    "cofz",
	},
	"Article": {
		Leader:      "     nab  22        4500",
		Field007:    "tu",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "nc",
		Physical:    "druck",
	},
	"E-Article": {
		Leader:      "     nab  22        4500",
		Field007:    "cr",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "cr",
		Physical:    "cofz",
	},
	"Thesis": {
		Leader:      "     nam  22        4500",
		Field007:    "tu",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "nc",
		GenreForm:   "Hochschulschrift",
		GenreSource: "gnd-content",
		Physical:    "druck",
		Special:     "hs",
	},
	"Map": {
		Leader:      "     nem  22        4500",
		Field007:    "aj",
		Periodicity: " ",
		ContentType: "cri",
		CarrierType: "nc",
		Physical:    "druck",
		Special:     "kart",
	},
	"Website": {
		Leader:      "     nai  22        4500",
		Field007:    "cr",
		Periodicity: "k",
		ContentType: "txt",
		CarrierType: "cr",
		Physical:    "cofz",
		Special:     "website",
	},
	"Video": {
		Leader:      "     ngm  22        4500",
		Field007:    "vu",
		Periodicity: " ",
		ContentType: "tdi",
		CarrierType: "vd",
		Special:     "vika",
	},
	"Audio": {
		Leader:      "     njm  22        4500",
		Field007:    "su",
		Periodicity: " ",
		ContentType: "prm",
		CarrierType: "sd",
	},
	"CD-ROM": {
		Leader:      "     nmm  22        4500",
		Field007:    "co",
		Periodicity: " ",
		ContentType: "txt",
		CarrierType: "cd",
		Special:     "crom",
	},
}

// LookupFormat returns the constants for an exact material type name.
func LookupFormat(name string) (Format, bool) {
	f, ok := Formats[name]
	return f, ok
}

// Infer guesses the material type name from a free text type statement, as
// found in dc:type or spreadsheet columns. Returns the empty string when
// nothing matches, the caller picks its own default.
func Infer(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "thesis") || strings.Contains(s, "dissertation") || strings.Contains(s, "hochschulschrift"):
		return "Thesis"
	case strings.Contains(s, "article") || strings.Contains(s, "aufsatz"):
		return "Article"
	case strings.Contains(s, "journal") || strings.Contains(s, "periodical") || strings.Contains(s, "zeitschrift"):
		return "Journal"
	case strings.Contains(s, "map") || strings.Contains(s, "karte"):
		return "Map"
	case strings.Contains(s, "website") || strings.Contains(s, "web site"):
		return "Website"
	case strings.Contains(s, "video") || strings.Contains(s, "film"):
		return "Video"
	case strings.Contains(s, "audio") || strings.Contains(s, "sound"):
		return "Audio"
	case strings.Contains(s, "cd-rom") || strings.Contains(s, "cdrom"):
		return "CD-ROM"
	case strings.Contains(s, "book") || strings.Contains(s, "monograph") || strings.Contains(s, "buch"):
		return "Book"
	}
	return ""
}

// Electronic maps a print material type to its online counterpart, names
// without one pass through.
func Electronic(name string) string {
	switch name {
	case "Book":
		return "E-Book"
	case "Journal":
		return "E-Journal"
	case "Article":
		return "E-Article"
	}
	return name
}

// languages maps two letter and a few spelled out language names to MARC
// codes. Three letter codes pass through Language unchanged.
var languages = map[string]string{
	"cs":       "cze",
	"da":       "dan",
	"de":       "ger",
	"en":       "eng",
	"es":       "spa",
	"fr":       "fre",
	"hu":       "hun",
	"it":       "ita",
	"la":       "lat",
	"nl":       "dut",
	"pl":       "pol",
	"pt":       "por",
	"ru":       "rus",
	"sv":       "swe",
	"czech":    "cze",
	"dutch":    "dut",
	"english":  "eng",
	"french":   "fre",
	"german":   "ger",
	"italian":  "ita",
	"latin":    "lat",
	"polish":   "pol",
	"russian":  "rus",
	"spanish":  "spa",
	"deutsch":  "ger",
	"englisch": "eng",
	"deu":      "ger",
	"fra":      "fre",
}

// Language normalizes a language statement to a three letter MARC code,
// empty if unknown.
func Language(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, ok := languages[s]; ok {
		return code
	}
	if len(s) == 3 {
		return s
	}
	return ""
}
