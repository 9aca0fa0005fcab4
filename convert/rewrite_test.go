package convert

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/fincmarc/marc"
)

func testRecord(id string, links ...string) *marc.Record {
	r := marc.NewRecord()
	r.AddControlField("001", id)
	r.Add("245", "a", "Ein Titel")
	for _, link := range links {
		r.Add("773", "w", link)
	}
	return r
}

func TestRegister(t *testing.T) {
	ctx := NewContext("130")
	if got, want := ctx.Register("123"), "finc-130-123"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := ctx.Register("123"), "finc-130-123"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// canonical values pass through and do not grow the map
	if got, want := ctx.Register("finc-130-999"), "finc-130-999"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := ctx.Seen(), 1; got != want {
		t.Errorf("seen: got %d, want %d", got, want)
	}
	if got := ctx.Register("  "); got != "" {
		t.Errorf("blank id: got %q, want empty", got)
	}
}

func TestRewriteForwardOnly(t *testing.T) {
	ctx := NewContext("130")
	a := testRecord("A", "B")
	b := testRecord("B", "A")
	Rewrite(ctx, a)
	Rewrite(ctx, b)
	if got, want := a.ControlField("001"), "finc-130-A"; got != want {
		t.Errorf("001: got %q, want %q", got, want)
	}
	// A links ahead to B, which had not been seen yet, so the raw value
	// stays and the miss is counted.
	if got, want := a.First("773", "w"), "B"; got != want {
		t.Errorf("forward link: got %q, want %q", got, want)
	}
	if got, want := b.First("773", "w"), "finc-130-A"; got != want {
		t.Errorf("backward link: got %q, want %q", got, want)
	}
	if got, want := ctx.Unresolved, int64(1); got != want {
		t.Errorf("unresolved: got %d, want %d", got, want)
	}
}

func TestRewriteSelfReference(t *testing.T) {
	ctx := NewContext("109")
	r := testRecord("X", "X")
	Rewrite(ctx, r)
	if got, want := r.First("773", "w"), "finc-109-X"; got != want {
		t.Errorf("self link: got %q, want %q", got, want)
	}
	if got, want := ctx.Unresolved, int64(0); got != want {
		t.Errorf("unresolved: got %d, want %d", got, want)
	}
}

func TestRewriteIdempotent(t *testing.T) {
	ctx := NewContext("130")
	r := testRecord("A", "A")
	Rewrite(ctx, r)
	first, err := r.XML()
	if err != nil {
		t.Fatalf("xml: %v", err)
	}
	Rewrite(ctx, r)
	second, err := r.XML()
	if err != nil {
		t.Fatalf("xml: %v", err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("second rewrite changed the record (-first +second):\n%s", diff)
	}
	if got, want := ctx.Seen(), 1; got != want {
		t.Errorf("seen: got %d, want %d", got, want)
	}
}

func TestRewritePattern(t *testing.T) {
	ctx := NewContext("49")
	ctx.Pattern = regexp.MustCompile(`^[0-9]+$`)
	r := testRecord("7", "urn:nbn:de:101-2004", "15")
	Rewrite(ctx, r)
	// free text does not match the local identifier shape, left alone and
	// not counted
	if got, want := r.First("773", "w"), "urn:nbn:de:101-2004"; got != want {
		t.Errorf("free text link: got %q, want %q", got, want)
	}
	if got, want := ctx.Unresolved, int64(1); got != want {
		t.Errorf("unresolved: got %d, want %d", got, want)
	}
}
