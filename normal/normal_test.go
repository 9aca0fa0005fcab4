package normal

import (
	"testing"
)

func TestNormalizers(t *testing.T) {
	var cases = []struct {
		name string
		n    Normalizer
		in   string
		want string
	}{
		{"trim", &TrimNormalizer{}, "  x  ", "x"},
		{"collapse ws", &CollapseWSNormalizer{}, "a\n\t b   c", "a b c"},
		{"control chars", &ControlCharNormalizer{}, "a\x01b\x7fc", "abc"},
		{"punct", &PunctNormalizer{}, "Ein Titel /", "Ein Titel"},
		{"punct colon", &PunctNormalizer{}, "Berlin :", "Berlin"},
		{"punct keeps period", &PunctNormalizer{}, "Hrsg.", "Hrsg."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.n.Normalize(c.in); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestDefaultPipeline(t *testing.T) {
	var cases = []struct {
		in   string
		want string
	}{
		{"  Ein \x01Titel\n /  ", "Ein Titel /"},
		{"\t\n", ""},
		{"schon sauber", "schon sauber"},
	}
	for _, c := range cases {
		if got := Default().Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitlePipeline(t *testing.T) {
	if got, want := Title().Normalize("  Ein \x01Titel\n /  "), "Ein Titel"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
