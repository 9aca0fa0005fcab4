package mappings

import "testing"

func TestFormatTable(t *testing.T) {
	for name, format := range Formats {
		if len(format.Leader) != 24 {
			t.Errorf("%s: leader length %d", name, len(format.Leader))
		}
		if format.Field007 == "" {
			t.Errorf("%s: missing 007", name)
		}
		if len(format.Periodicity) != 1 {
			t.Errorf("%s: periodicity must be a single code, got %q", name, format.Periodicity)
		}
	}
}

func TestInfer(t *testing.T) {
	testCases := []struct {
		value string
		want  string
	}{
		{"Text", ""},
		{"info:eu-repo/semantics/article", "Article"},
		{"doctoralThesis", "Thesis"},
		{"Dissertation", "Thesis"},
		{"journal article", "Article"},
		{"Zeitschrift", "Journal"},
		{"Buch", "Book"},
		{"eBook", "Book"},
		{"Videokassette", "Video"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			if got := Infer(tc.value); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestElectronic(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"Book", "E-Book"},
		{"Journal", "E-Journal"},
		{"Article", "E-Article"},
		{"Thesis", "Thesis"},
		{"Map", "Map"},
	}
	for _, tc := range testCases {
		if got := Electronic(tc.name); got != tc.want {
			t.Errorf("want %q, got %q", tc.want, got)
		}
	}
}

func TestLanguage(t *testing.T) {
	testCases := []struct {
		value string
		want  string
	}{
		{"de", "ger"},
		{"ger", "ger"},
		{"deu", "ger"},
		{"German", "ger"},
		{"en", "eng"},
		{"eng", "eng"},
		{"English", "eng"},
		{" fr ", "fre"},
		{"xyz", "xyz"},
		{"x", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := Language(tc.value); got != tc.want {
			t.Errorf("%q: want %q, got %q", tc.value, tc.want, got)
		}
	}
}
