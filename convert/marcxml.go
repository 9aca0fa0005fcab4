package convert

import (
	"io"

	"github.com/miku/fincmarc/marc"
	"github.com/miku/fincmarc/stdnum"
	"github.com/miku/fincmarc/xmlsplit"
	log "github.com/sirupsen/logrus"
)

// ConvertMARCXML normalizes records that already arrive as MARCXML. The
// stream is cut lazily into record elements, standard numbers are
// revalidated and cross references rewritten. Fragments that do not parse
// are skipped, a truncated tail ends the run cleanly.
func ConvertMARCXML(ctx *Context, r io.Reader, w marc.Writer) error {
	scanner := xmlsplit.NewScanner(r, "record")
	for scanner.Scan() {
		rec, err := marc.ParseXML(scanner.Bytes())
		if err != nil {
			ctx.Skipped++
			log.WithFields(log.Fields{
				"sid": ctx.SID,
				"err": err,
			}).Warn("malformed record")
			continue
		}
		validateStdnums(rec)
		if err := emit(ctx, w, rec, nil, rec.ControlField("001")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// validateStdnums recomputes checksums on standard number fields. Values
// that fail are blanked and dropped with the final cleanup pass.
func validateStdnums(r *marc.Record) {
	for _, f := range r.FieldsWithTag("020") {
		for i, sf := range f.Subfields {
			if sf.Code == "a" {
				f.Subfields[i].Value = stdnum.ISBN(sf.Value)
			}
		}
	}
	for _, f := range r.FieldsWithTag("022") {
		for i, sf := range f.Subfields {
			if sf.Code == "a" {
				f.Subfields[i].Value = stdnum.ISSN(sf.Value)
			}
		}
	}
}
