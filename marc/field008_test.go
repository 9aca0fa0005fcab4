package marc

import (
	"testing"
	"time"
)

func TestBuildField008(t *testing.T) {
	defer func(f func() time.Time) { timeNow = f }(timeNow)
	timeNow = func() time.Time {
		return time.Date(2013, 2, 27, 12, 0, 0, 0, time.UTC)
	}
	testCases := []struct {
		name        string
		year        string
		periodicity string
		language    string
		want        string
	}{
		{
			name:        "spreadsheet year artifact",
			year:        "2011.0",
			periodicity: "monthly",
			language:    "ger",
			want:        "130227s2011    xx m                ger  ",
		},
		{
			name:        "year range takes first",
			year:        "2010-2012",
			periodicity: "quarterly",
			language:    "eng",
			want:        "130227s2010    xx q                eng  ",
		},
		{
			name:        "missing year",
			year:        "",
			periodicity: "",
			language:    "ger",
			want:        "130227uuuuu    xx                  ger  ",
		},
		{
			name:        "single letter periodicity passes through",
			year:        "1999",
			periodicity: "m",
			language:    "fre",
			want:        "130227s1999    xx m                fre  ",
		},
		{
			name:        "unmapped periodicity stays blank",
			year:        "2005",
			periodicity: "alle zwei Tage",
			language:    "ger",
			want:        "130227s2005    xx                  ger  ",
		},
		{
			name:        "language folded and truncated",
			year:        "2020",
			periodicity: "Annual",
			language:    "GERMAN",
			want:        "130227s2020    xx a                ger  ",
		},
		{
			name:        "empty language",
			year:        "2020",
			periodicity: "weekly",
			language:    "",
			want:        "130227s2020    xx w                     ",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildField008(tc.year, tc.periodicity, tc.language)
			if len(got) != 40 {
				t.Fatalf("want 40 characters, got %d: %q", len(got), got)
			}
			if got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildField008Deterministic(t *testing.T) {
	defer func(f func() time.Time) { timeNow = f }(timeNow)
	timeNow = func() time.Time {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	a := BuildField008("2011", "monthly", "ger")
	b := BuildField008("2011", "monthly", "ger")
	if a != b {
		t.Errorf("not deterministic: %q vs %q", a, b)
	}
}
