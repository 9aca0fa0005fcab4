package convert

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/schema/oaidc"
	"github.com/miku/fincmarc/schema/row"
)

const sampleOAI = `<?xml version="1.0"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
<ListRecords>
<record>
  <header>
    <identifier>oai:example.org:1</identifier>
    <datestamp>2020-01-01</datestamp>
  </header>
  <metadata>
    <dc>
      <title>Erster Titel</title>
      <creator>Mustermann, Max</creator>
      <date>2001</date>
      <identifier>https://example.org/1</identifier>
      <language>ger</language>
    </dc>
  </metadata>
</record>
<record>
  <header>
    <identifier>oai:example.org:2</identifier>
    <datestamp>2020-01-02</datestamp>
  </header>
  <metadata>
    <dc>
      <title>Zweiter Titel</title>
      <date>2002</date>
      <relation>oai:example.org:1</relation>
    </dc>
  </metadata>
</record>
<record>
  <header status="deleted">
    <identifier>oai:example.org:3</identifier>
  </header>
</record>
</ListRecords>
</OAI-PMH>`

func TestConvertOAIDC(t *testing.T) {
	ctx := NewContext("28")
	ctx.Collection = "Beispielquelle"
	var buf bytes.Buffer
	w := marc.NewXMLWriter(&buf)
	if err := ConvertOAIDC(ctx, strings.NewReader(sampleOAI), w); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got, want := ctx.Processed, int64(2); got != want {
		t.Errorf("processed: got %d, want %d", got, want)
	}
	if got, want := ctx.Skipped, int64(1); got != want {
		t.Errorf("skipped: got %d, want %d", got, want)
	}
	if got, want := ctx.Unresolved, int64(0); got != want {
		t.Errorf("unresolved: got %d, want %d", got, want)
	}
	out := buf.String()
	if !strings.Contains(out, `<controlfield tag="001">finc-28-oai:example.org:1</controlfield>`) {
		t.Errorf("canonical 001 missing in output:\n%s", out)
	}
	// the second record links back to the first, the reference must
	// resolve inside the batch
	if !strings.Contains(out, `<subfield code="w">finc-28-oai:example.org:1</subfield>`) {
		t.Errorf("resolved host item link missing in output:\n%s", out)
	}
	if strings.Contains(out, "oai:example.org:3") {
		t.Errorf("deleted record leaked into output:\n%s", out)
	}
}

func TestMapOAIDC(t *testing.T) {
	const sample = `
<record>
  <header>
    <identifier>oai:example.org:42</identifier>
  </header>
  <metadata>
    <dc>
      <title>  Kartographie der Gegenwart / </title>
      <creator>Max Mustermann</creator>
      <creator>Doe, Jane</creator>
      <date>ca. 1999</date>
      <identifier>https://example.org/record/42</identifier>
      <identifier>urn:ISBN:3-598-21500-9</identifier>
      <language>ger</language>
    </dc>
  </metadata>
</record>`
	var record oaidc.Record
	if err := xml.Unmarshal([]byte(sample), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	ctx := NewContext("28")
	r, err := MapOAIDC(ctx, &record)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	// a url makes this an electronic book
	if got, want := r.Leader(), "     nam  22        4500"; got != want {
		t.Errorf("leader: got %q, want %q", got, want)
	}
	if got, want := r.ControlField("007"), "cr"; got != want {
		t.Errorf("007: got %q, want %q", got, want)
	}
	f008 := r.ControlField("008")
	if len(f008) != 40 {
		t.Fatalf("008 length: got %d, want 40", len(f008))
	}
	if got, want := f008[6:11], "s1999"; got != want {
		t.Errorf("008 dates: got %q, want %q", got, want)
	}
	if got, want := f008[35:38], "ger"; got != want {
		t.Errorf("008 language: got %q, want %q", got, want)
	}
	if got, want := r.First("020", "a"), "3598215009"; got != want {
		t.Errorf("020a: got %q, want %q", got, want)
	}
	if got, want := r.First("100", "a"), "Mustermann, Max"; got != want {
		t.Errorf("100a: got %q, want %q", got, want)
	}
	if got, want := r.First("245", "a"), "Kartographie der Gegenwart"; got != want {
		t.Errorf("245a: got %q, want %q", got, want)
	}
	if got, want := r.First("700", "a"), "Doe, Jane"; got != want {
		t.Errorf("700a: got %q, want %q", got, want)
	}
	if got, want := r.First("935", "b"), "cofz"; got != want {
		t.Errorf("935b: got %q, want %q", got, want)
	}
	if got, want := r.First("980", "b"), "28"; got != want {
		t.Errorf("980b: got %q, want %q", got, want)
	}
}

func TestMapOAIDCSkips(t *testing.T) {
	var cases = []struct {
		name   string
		sample string
		want   error
	}{
		{
			name:   "deleted",
			sample: `<record><header status="deleted"><identifier>x</identifier></header></record>`,
			want:   ErrSkipDeleted,
		},
		{
			name:   "no identifier",
			sample: `<record><header></header><metadata><dc><title>T</title></dc></metadata></record>`,
			want:   ErrSkipNoIdentifier,
		},
		{
			name:   "no title",
			sample: `<record><header><identifier>x</identifier></header><metadata><dc><title>   </title></dc></metadata></record>`,
			want:   ErrSkipNoTitle,
		},
	}
	ctx := NewContext("28")
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var record oaidc.Record
			if err := xml.Unmarshal([]byte(c.sample), &record); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if _, err := MapOAIDC(ctx, &record); err != c.want {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestMapRowPeriodicity(t *testing.T) {
	ctx := NewContext("88")
	rr := &row.Record{ID: "5", Title: "Monatsblatt", Format: "Journal", Periodicity: "monthly"}
	r, err := MapRow(ctx, rr)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	f008 := r.ControlField("008")
	if len(f008) != 40 {
		t.Fatalf("008 length: got %d, want 40", len(f008))
	}
	if got, want := f008[18], byte('m'); got != want {
		t.Errorf("008 frequency: got %q, want %q", got, want)
	}
}

func TestConvertJSONL(t *testing.T) {
	input := `{"id":"1","title":"Buch Eins","authors":["Max Mustermann"],"year":"2001","isbn":["978-3-598-21500-1"]}
{not json
{"id":"2","title":"Buch Zwei","parent_id":"1","parent_title":"Buch Eins"}
`
	ctx := NewContext("99")
	var buf bytes.Buffer
	w := marc.NewXMLWriter(&buf)
	if err := ConvertJSONL(ctx, strings.NewReader(input), w); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got, want := ctx.Processed, int64(2); got != want {
		t.Errorf("processed: got %d, want %d", got, want)
	}
	if got, want := ctx.Skipped, int64(1); got != want {
		t.Errorf("skipped: got %d, want %d", got, want)
	}
	out := buf.String()
	if !strings.Contains(out, ">9783598215001<") {
		t.Errorf("validated isbn missing in output:\n%s", out)
	}
	if !strings.Contains(out, `<subfield code="w">finc-99-1</subfield>`) {
		t.Errorf("resolved parent link missing in output:\n%s", out)
	}
}

func TestConvertCSV(t *testing.T) {
	input := `id,title,authors,year,parent_id
10,"Zeitschrift für Beispiele, Band 2",,2000,
11,Beiheft,Doe| Roe,2001,10
`
	ctx := NewContext("55")
	var buf bytes.Buffer
	w := marc.NewXMLWriter(&buf)
	if err := ConvertCSV(ctx, strings.NewReader(input), w); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got, want := ctx.Processed, int64(2); got != want {
		t.Errorf("processed: got %d, want %d", got, want)
	}
	out := buf.String()
	if !strings.Contains(out, "Zeitschrift für Beispiele, Band 2") {
		t.Errorf("quoted title missing in output:\n%s", out)
	}
	if !strings.Contains(out, `<subfield code="w">finc-55-10</subfield>`) {
		t.Errorf("resolved parent link missing in output:\n%s", out)
	}
	if !strings.Contains(out, `<subfield code="a">Roe</subfield>`) {
		t.Errorf("second author missing in output:\n%s", out)
	}
}

func TestConvertMARCXML(t *testing.T) {
	input := `<collection>
<record>
  <leader>     nam  22        4500</leader>
  <controlfield tag="001">1001</controlfield>
  <datafield tag="020" ind1=" " ind2=" ">
    <subfield code="a">3-598-21500-9</subfield>
  </datafield>
  <datafield tag="245" ind1=" " ind2=" ">
    <subfield code="a">Band Eins</subfield>
  </datafield>
</record>
<record>
  <leader>     nam  22        4500</leader>
  <controlfield tag="001">1002</controlfield>
  <datafield tag="020" ind1=" " ind2=" ">
    <subfield code="a">3-598-21500-0</subfield>
  </datafield>
  <datafield tag="245" ind1=" " ind2=" ">
    <subfield code="a">Band Zwei</subfield>
  </datafield>
  <datafield tag="780" ind1=" " ind2=" ">
    <subfield code="w">1001</subfield>
  </datafield>
</record>
<record>
  <leader>     nam  22`
	ctx := NewContext("77")
	var buf bytes.Buffer
	w := marc.NewXMLWriter(&buf)
	if err := ConvertMARCXML(ctx, strings.NewReader(input), w); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got, want := ctx.Processed, int64(2); got != want {
		t.Errorf("processed: got %d, want %d", got, want)
	}
	out := buf.String()
	if !strings.Contains(out, ">3598215009<") {
		t.Errorf("validated isbn missing in output:\n%s", out)
	}
	// bad check digit, the whole field goes away
	if strings.Contains(out, "3-598-21500-0") {
		t.Errorf("invalid isbn survived:\n%s", out)
	}
	if got, want := strings.Count(out, `tag="020"`), 1; got != want {
		t.Errorf("020 fields: got %d, want %d\n%s", got, want, out)
	}
	if got, want := strings.Count(out, "finc-77-1001"), 2; got != want {
		t.Errorf("canonical id occurrences: got %d, want %d\n%s", got, want, out)
	}
}
