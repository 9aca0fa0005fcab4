// Package normal cleans metadata values before they enter MARC fields.
// Upstream exports carry stray control characters, multiline values and
// dangling ISBD punctuation that would otherwise survive into the output.
package normal

import (
	"strings"
	"unicode"
)

type Normalizer interface {
	Normalize(string) string
}

// Pipeline applies normalizers in order.
type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

// TrimNormalizer drops surrounding whitespace.
type TrimNormalizer struct{}

func (n *TrimNormalizer) Normalize(v string) string {
	return strings.TrimSpace(v)
}

// CollapseWSNormalizer folds any whitespace run into a single space.
type CollapseWSNormalizer struct{}

func (n *CollapseWSNormalizer) Normalize(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// ControlCharNormalizer drops control characters, values are single line.
type ControlCharNormalizer struct{}

func (n *ControlCharNormalizer) Normalize(v string) string {
	var b strings.Builder
	for _, c := range v {
		if unicode.IsControl(c) {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// PunctNormalizer trims ISBD punctuation left dangling after values are
// split apart, like "Ein Titel /" or "Berlin :".
type PunctNormalizer struct{}

func (n *PunctNormalizer) Normalize(v string) string {
	return strings.TrimRight(v, " /:;=,")
}

// Default returns the pipeline applied to ordinary subfield values.
func Default() *Pipeline {
	return &Pipeline{Normalizer: []Normalizer{
		&ControlCharNormalizer{},
		&CollapseWSNormalizer{},
		&TrimNormalizer{},
	}}
}

// Title returns the pipeline for title-like values, which additionally
// drops dangling ISBD punctuation.
func Title() *Pipeline {
	p := Default()
	p.Normalizer = append(p.Normalizer, &PunctNormalizer{})
	return p
}
