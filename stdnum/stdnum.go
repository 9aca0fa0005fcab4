// Package stdnum validates standard bibliographic identifiers. Invalid or
// malformed values normalize to the empty string, so callers can omit a field
// without extra error handling.
package stdnum

import "strings"

// ISBN validates a book number in 10 or 13 character form and returns it
// without separators, or the empty string. The check character of the 10
// character form may be an X, standing for ten.
func ISBN(raw string) string {
	s := clean(raw)
	switch len(s) {
	case 10:
		if !allDigits(s[:9]) {
			return ""
		}
		var sum int
		for i := 0; i < 9; i++ {
			sum += int(s[i]-'0') * (10 - i)
		}
		if checkChar(sum%11) != s[9] {
			return ""
		}
		return s
	case 13:
		if !allDigits(s) {
			return ""
		}
		var sum int
		for i := 0; i < 12; i++ {
			d := int(s[i] - '0')
			if i%2 == 1 {
				d = d * 3
			}
			sum += d
		}
		if byte('0'+(10-sum%10)%10) != s[12] {
			return ""
		}
		return s
	}
	return ""
}

// ISSN validates a serial number and returns it in the usual hyphenated form,
// or the empty string. As with ISBN, a trailing X stands for ten.
func ISSN(raw string) string {
	s := clean(raw)
	if len(s) != 8 || !allDigits(s[:7]) {
		return ""
	}
	var sum int
	for i := 0; i < 7; i++ {
		sum += int(s[i]-'0') * (8 - i)
	}
	if checkChar(sum%11) != s[7] {
		return ""
	}
	return s[:4] + "-" + s[4:]
}

// clean strips separators and whitespace and folds x to uppercase. Any other
// non-digit renders the whole value invalid.
func clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'x' || r == 'X':
			b.WriteRune('X')
		case r == '-' || r == ' ' || r == '\t':
		default:
			return ""
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func checkChar(remainder int) byte {
	if remainder == 10 {
		return 'X'
	}
	return byte('0' + remainder)
}
