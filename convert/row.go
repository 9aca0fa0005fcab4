package convert

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/miku/fincmarc/mappings"
	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/schema/row"
	"github.com/miku/fincmarc/stdnum"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// ConvertJSONL reads one JSON document per line, in the generic row shape.
func ConvertJSONL(ctx *Context, r io.Reader, w marc.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rr row.Record
		if err := json.Unmarshal(line, &rr); err != nil {
			ctx.Skipped++
			log.WithFields(log.Fields{
				"sid": ctx.SID,
				"err": err,
			}).Warn("unparseable line")
			continue
		}
		out, mapErr := MapRow(ctx, &rr)
		if err := emit(ctx, w, out, mapErr, rr.ID); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ConvertCSV reads a delimited export with a header row. Column names are
// matched case insensitively, unknown columns are ignored, repeatable
// columns separate values with a pipe.
func ConvertCSV(ctx *Context, r io.Reader, w marc.Writer) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			ctx.Skipped++
			log.WithFields(log.Fields{
				"sid": ctx.SID,
				"err": err,
			}).Warn("unreadable row")
			continue
		}
		rr := rowFromFields(header, fields)
		out, mapErr := MapRow(ctx, rr)
		if err := emit(ctx, w, out, mapErr, rr.ID); err != nil {
			return err
		}
	}
	return nil
}

// MapRow turns one generic row into a MARC record.
func MapRow(ctx *Context, rr *row.Record) (*marc.Record, error) {
	if rr.Deleted {
		return nil, ErrSkipDeleted
	}
	id := strings.TrimSpace(rr.ID)
	if id == "" {
		return nil, ErrSkipNoIdentifier
	}
	title := scrubTitle.Normalize(rr.Title)
	if title == "" {
		return nil, ErrSkipNoTitle
	}
	name := rr.Format
	if _, ok := mappings.LookupFormat(name); !ok {
		name = mappings.Infer(rr.Format)
	}
	if name == "" {
		name = "Book"
	}
	if len(rr.URL) > 0 {
		name = mappings.Electronic(name)
	}
	f, _ := mappings.LookupFormat(name)

	r := marc.NewRecord()
	if err := r.SetLeader(f.Leader); err != nil {
		return nil, err
	}
	r.AddControlField("001", id)
	r.AddControlField("007", f.Field007)
	periodicity := rr.Periodicity
	if periodicity == "" {
		periodicity = f.Periodicity
	}
	lang := mappings.Language(rr.Language)
	r.AddControlField("008", marc.BuildField008(rr.Year, periodicity, lang))
	for _, v := range rr.ISBN {
		r.Add("020", "a", stdnum.ISBN(v))
	}
	for _, v := range rr.ISSN {
		r.Add("022", "a", stdnum.ISSN(v))
	}
	if doi := cleanDOI(rr.DOI); doi != "" {
		r.AddField(marc.Field{Tag: "024", Ind1: "7", Subfields: []marc.Subfield{
			{Code: "a", Value: doi},
			{Code: "2", Value: "doi"},
		}})
	}
	if lang != "" {
		r.Add("041", "a", lang)
	}
	if len(rr.Authors) > 0 {
		r.Add("100", "a", invertName(scrub.Normalize(rr.Authors[0])))
	}
	r.Add("245", "a", title, "b", scrubTitle.Normalize(rr.Subtitle))
	r.Add("260", "a", scrub.Normalize(rr.Place), "b", scrub.Normalize(rr.Publisher), "c", strings.TrimSpace(rr.Year))
	r.Add("336", "b", f.ContentType, "2", "rdacontent")
	r.Add("338", "b", f.CarrierType, "2", "rdacarrier")
	if f.GenreForm != "" {
		r.Add("655", "a", f.GenreForm, "2", f.GenreSource)
	}
	if len(rr.Authors) > 1 {
		for _, v := range rr.Authors[1:] {
			r.Add("700", "a", invertName(scrub.Normalize(v)))
		}
	}
	if rr.ParentID != "" || rr.ParentTitle != "" {
		r.Add("773", "t", scrub.Normalize(rr.ParentTitle), "w", strings.TrimSpace(rr.ParentID))
	}
	for _, u := range rr.URL {
		r.AddField(marc.Field{Tag: "856", Ind1: "4", Ind2: "0", Subfields: []marc.Subfield{
			{Code: "u", Value: u},
			{Code: "z", Value: "Link zur Ressource"},
		}})
	}
	if f.Physical != "" || f.Special != "" {
		r.Add("935", "b", f.Physical, "c", f.Special)
	}
	collection := rr.Collection
	if collection == "" {
		collection = ctx.Collection
	}
	r.Add("980", "a", id, "b", ctx.SID, "c", collection)
	return r, nil
}

func rowFromFields(header, fields []string) *row.Record {
	var rr row.Record
	for i, v := range fields {
		if i >= len(header) {
			break
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch header[i] {
		case "id", "identifier", "record_id":
			rr.ID = v
		case "title":
			rr.Title = v
		case "subtitle":
			rr.Subtitle = v
		case "author", "authors", "creator":
			rr.Authors = splitMulti(v)
		case "format", "type":
			rr.Format = v
		case "year", "date":
			rr.Year = v
		case "periodicity", "frequency":
			rr.Periodicity = v
		case "language":
			rr.Language = v
		case "isbn":
			rr.ISBN = splitMulti(v)
		case "issn":
			rr.ISSN = splitMulti(v)
		case "doi":
			rr.DOI = v
		case "url", "link":
			rr.URL = splitMulti(v)
		case "publisher":
			rr.Publisher = v
		case "place":
			rr.Place = v
		case "collection":
			rr.Collection = v
		case "parent_id":
			rr.ParentID = v
		case "parent_title":
			rr.ParentTitle = v
		case "deleted":
			rr.Deleted = v == "true" || v == "1" || v == "yes"
		}
	}
	return &rr
}

func splitMulti(v string) (result []string) {
	for _, p := range strings.Split(v, "|") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
