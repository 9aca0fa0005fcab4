package oaidc

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `
<record>
  <header status="deleted">
    <identifier>oai:example.org:123</identifier>
    <datestamp>2013-02-27</datestamp>
    <setSpec>dnb:reiheC</setSpec>
  </header>
  <metadata>
    <dc>
      <title>Kartographie der Gegenwart</title>
      <creator>Mustermann, Max</creator>
      <creator>Doe, Jane</creator>
      <date>ca. 1999</date>
      <date>2010-07-22</date>
      <identifier>https://example.org/record/123</identifier>
      <identifier>https://doi.org/10.1234/example.123</identifier>
      <identifier>urn:ISBN:3-598-21500-9</identifier>
      <source>Journal of Examples 1234-5672 12 (2010)</source>
      <language>ger</language>
    </dc>
  </metadata>
</record>`

func decode(t *testing.T, s string) *Record {
	t.Helper()
	var record Record
	if err := xml.Unmarshal([]byte(s), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return &record
}

func TestRecord(t *testing.T) {
	record := decode(t, sample)
	if !record.Deleted() {
		t.Errorf("want deleted record")
	}
	if got, want := record.Header.Identifier, "oai:example.org:123"; got != want {
		t.Errorf("identifier: got %q, want %q", got, want)
	}
	if got, want := record.Title(), "Kartographie der Gegenwart"; got != want {
		t.Errorf("title: got %q, want %q", got, want)
	}
	if got, want := record.Language(), "ger"; got != want {
		t.Errorf("language: got %q, want %q", got, want)
	}
	if got, want := len(record.Metadata.Dc.Creator), 2; got != want {
		t.Errorf("creators: got %d, want %d", got, want)
	}
}

func TestYear(t *testing.T) {
	record := decode(t, sample)
	// The first date is unparseable as a date but contains a year group.
	if got, want := record.Year(), "1999"; got != want {
		t.Errorf("year: got %q, want %q", got, want)
	}
}

func TestURL(t *testing.T) {
	record := decode(t, sample)
	want := []string{
		"https://example.org/record/123",
		"https://doi.org/10.1234/example.123",
	}
	if diff := cmp.Diff(want, record.URL()); diff != "" {
		t.Errorf("urls mismatch (-want +got):\n%s", diff)
	}
}

func TestDOI(t *testing.T) {
	record := decode(t, sample)
	if got, want := record.DOI(), "10.1234/example.123"; got != want {
		t.Errorf("doi: got %q, want %q", got, want)
	}
}

func TestISBN(t *testing.T) {
	record := decode(t, sample)
	want := []string{"3-598-21500-9"}
	if diff := cmp.Diff(want, record.ISBN()); diff != "" {
		t.Errorf("isbn candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestISSN(t *testing.T) {
	record := decode(t, sample)
	want := []string{"1234-5672"}
	if diff := cmp.Diff(want, record.ISSN()); diff != "" {
		t.Errorf("issn candidates mismatch (-want +got):\n%s", diff)
	}
}
