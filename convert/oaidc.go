package convert

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/miku/fincmarc/mappings"
	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/normal"
	"github.com/miku/fincmarc/schema/oaidc"
	"github.com/miku/fincmarc/stdnum"
	"github.com/miku/xmlstream"
	log "github.com/sirupsen/logrus"
)

var (
	scrub      = normal.Default()
	scrubTitle = normal.Title()
)

// ConvertOAIDC reads an OAI harvest stream and writes normalized records.
// A truncated stream tail ends the run without error, records read up to
// that point are kept.
func ConvertOAIDC(ctx *Context, r io.Reader, w marc.Writer) error {
	scanner := xmlstream.NewScanner(bufio.NewReader(r), new(oaidc.Record))
	scanner.Decoder.Strict = false
	for scanner.Scan() {
		record, ok := scanner.Element().(*oaidc.Record)
		if !ok {
			continue
		}
		out, mapErr := MapOAIDC(ctx, record)
		if err := emit(ctx, w, out, mapErr, record.Header.Identifier); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			log.WithFields(log.Fields{"sid": ctx.SID}).Warn("input truncated")
			return nil
		}
		return err
	}
	return nil
}

// MapOAIDC turns one OAI Dublin Core record into a MARC record. Deleted
// and unusable records come back as Skip errors.
func MapOAIDC(ctx *Context, record *oaidc.Record) (*marc.Record, error) {
	if record.Deleted() {
		return nil, ErrSkipDeleted
	}
	localID := strings.TrimSpace(record.Header.Identifier)
	if localID == "" {
		return nil, ErrSkipNoIdentifier
	}
	title := scrubTitle.Normalize(record.Title())
	if title == "" {
		return nil, ErrSkipNoTitle
	}
	dc := record.Metadata.Dc
	name := mappings.Infer(strings.Join(append(dc.Type, dc.Format...), " "))
	if name == "" {
		name = "Book"
	}
	if len(record.URL()) > 0 {
		name = mappings.Electronic(name)
	}
	f, _ := mappings.LookupFormat(name)

	r := marc.NewRecord()
	if err := r.SetLeader(f.Leader); err != nil {
		return nil, err
	}
	r.AddControlField("001", localID)
	r.AddControlField("007", f.Field007)
	lang := mappings.Language(record.Language())
	r.AddControlField("008", marc.BuildField008(record.Year(), f.Periodicity, lang))
	for _, v := range record.ISBN() {
		r.Add("020", "a", stdnum.ISBN(v))
	}
	for _, v := range record.ISSN() {
		r.Add("022", "a", stdnum.ISSN(v))
	}
	if doi := cleanDOI(record.DOI()); doi != "" {
		r.AddField(marc.Field{Tag: "024", Ind1: "7", Subfields: []marc.Subfield{
			{Code: "a", Value: doi},
			{Code: "2", Value: "doi"},
		}})
	}
	if lang != "" {
		r.Add("041", "a", lang)
	}
	if len(dc.Creator) > 0 {
		r.Add("100", "a", invertName(scrub.Normalize(dc.Creator[0])))
	}
	r.Add("245", "a", title)
	year := record.Year()
	if len(dc.Publisher) > 0 {
		r.Add("260", "b", scrub.Normalize(dc.Publisher[0]), "c", year)
	} else if year != "" {
		r.Add("260", "c", year)
	}
	r.Add("336", "b", f.ContentType, "2", "rdacontent")
	r.Add("338", "b", f.CarrierType, "2", "rdacarrier")
	for _, v := range dc.Description {
		r.Add("520", "a", scrub.Normalize(v))
	}
	if len(dc.Rights) > 0 {
		r.Add("540", "a", scrub.Normalize(dc.Rights[0]))
	}
	for _, v := range dc.Subject {
		r.Add("650", "a", scrub.Normalize(v))
	}
	if f.GenreForm != "" {
		r.Add("655", "a", f.GenreForm, "2", f.GenreSource)
	}
	if len(dc.Creator) > 1 {
		for _, v := range dc.Creator[1:] {
			r.Add("700", "a", invertName(scrub.Normalize(v)))
		}
	}
	for _, v := range dc.Contributor {
		r.Add("700", "a", invertName(scrub.Normalize(v)))
	}
	for _, v := range dc.Relation {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		// Only relations shaped like local identifiers can ever be
		// resolved within the batch.
		if strings.HasPrefix(v, "oai:") || (ctx.Pattern != nil && ctx.Pattern.MatchString(v)) {
			r.Add("773", "w", v)
		}
	}
	for _, u := range record.URL() {
		r.AddField(marc.Field{Tag: "856", Ind1: "4", Ind2: "0", Subfields: []marc.Subfield{
			{Code: "u", Value: u},
			{Code: "z", Value: "Link zur Ressource"},
		}})
	}
	if f.Physical != "" || f.Special != "" {
		r.Add("935", "b", f.Physical, "c", f.Special)
	}
	r.Add("980", "a", localID, "b", ctx.SID, "c", ctx.Collection)
	return r, nil
}
