package marc

import (
	"regexp"
	"strings"
	"time"
)

// timeNow is a hook for tests, which need a fixed creation date stamp.
var timeNow = time.Now

var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// frequencies maps descriptive periodicity names to 008/18 codes.
var frequencies = map[string]string{
	"daily":       "d",
	"semiweekly":  "c",
	"weekly":      "w",
	"biweekly":    "e",
	"semimonthly": "s",
	"monthly":     "m",
	"bimonthly":   "b",
	"quarterly":   "q",
	"semiannual":  "f",
	"annual":      "a",
	"biennial":    "g",
	"triennial":   "h",
	"irregular":   "x",
	"unknown":     "u",
	"other":       "z",
}

// BuildField008 assembles the fixed-length data elements field from a loosely
// formatted year, a periodicity name or single letter code, and a language
// code. The year may carry fractional artifacts from spreadsheet exports
// ("2011.0") or ranges ("2010-2012"), the first four consecutive digits
// count; without any, the date positions are filled with the unknown marker.
// The result is always exactly 40 characters; only the leading creation date
// stamp varies between runs.
func BuildField008(year, periodicity, language string) string {
	var b strings.Builder
	b.WriteString(timeNow().Format("060102"))
	if date1 := yearPattern.FindString(year); date1 != "" {
		b.WriteString("s")
		b.WriteString(date1)
	} else {
		b.WriteString("u")
		b.WriteString("uuuu")
	}
	b.WriteString("    ") // date2 blank for single dates
	b.WriteString("xx ")  // place of publication not identified
	b.WriteString(frequency(periodicity))
	b.WriteString("                ")
	b.WriteString(languageCode(language))
	b.WriteString("  ")
	return b.String()
}

// frequency normalizes a periodicity to a single 008/18 code, blank if it
// cannot be determined.
func frequency(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		return s
	}
	if code, ok := frequencies[s]; ok {
		return code
	}
	return " "
}

// languageCode pads or truncates a language to the three character span,
// keeping plain letters only so the field stays fixed-width.
func languageCode(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r < 'a' || r > 'z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 3 {
			break
		}
	}
	for b.Len() < 3 {
		b.WriteString(" ")
	}
	return b.String()
}
