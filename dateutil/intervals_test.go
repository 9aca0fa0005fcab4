package dateutil

import (
	"testing"
	"time"
)

func TestDaily(t *testing.T) {
	var (
		start = MustParse("2013-02-25")
		end   = MustParse("2013-02-28")
		ivs   = Daily(start, end)
	)
	if got, want := len(ivs), 3; got != want {
		t.Fatalf("intervals: got %d, want %d", got, want)
	}
	for i, iv := range ivs {
		if err := iv.Validate(); err != nil {
			t.Errorf("interval %d invalid: %v", i, err)
		}
	}
	if got, want := ivs[0].Start.Format("2006-01-02"), "2013-02-25"; got != want {
		t.Errorf("first start: got %q, want %q", got, want)
	}
	if got, want := ivs[2].Start.Format("2006-01-02"), "2013-02-27"; got != want {
		t.Errorf("last start: got %q, want %q", got, want)
	}
}

func TestDailyEmpty(t *testing.T) {
	day := MustParse("2013-02-25")
	if ivs := Daily(day, day); len(ivs) != 0 {
		t.Errorf("equal bounds: got %d intervals, want 0", len(ivs))
	}
	if ivs := Daily(day, day.Add(-24*time.Hour)); len(ivs) != 0 {
		t.Errorf("reversed bounds: got %d intervals, want 0", len(ivs))
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("2013-02-27"); err != nil {
		t.Errorf("parse failed: %v", err)
	}
	if _, err := Parse("not a date"); err == nil {
		t.Errorf("want error for junk input")
	}
}
