// Package convert turns source records into normalized MARC records.
//
// Each source format gets a small mapper, the shared backbone handles
// identifier validation, control field construction, cross reference
// rewriting and serialization. Mappers signal non-fatal conditions with
// Skip errors, anything else aborts the run.
package convert

import (
	"errors"
	"io"
	"strings"

	"github.com/miku/fincmarc/marc"
	log "github.com/sirupsen/logrus"
)

// Skip marks a record as intentionally not converted.
type Skip struct {
	err error
}

func (s Skip) Error() string {
	return s.err.Error()
}

var (
	ErrSkipDeleted      = Skip{err: errors.New("deleted record")}
	ErrSkipNoTitle      = Skip{err: errors.New("no title")}
	ErrSkipNoIdentifier = Skip{err: errors.New("no identifier")}
)

// IsSkip reports whether an error marks a skipped record.
func IsSkip(err error) bool {
	var skip Skip
	return errors.As(err, &skip)
}

// ConvertFunc reads source records from r and writes normalized records.
type ConvertFunc func(ctx *Context, r io.Reader, w marc.Writer) error

// Formats maps input format names to converters.
var Formats = map[string]ConvertFunc{
	"oaidc":   ConvertOAIDC,
	"marcxml": ConvertMARCXML,
	"jsonl":   ConvertJSONL,
	"csv":     ConvertCSV,
}

// emit finishes one mapped record: skips are counted and logged, surviving
// records get their identifiers rewritten and are handed to the writer.
func emit(ctx *Context, w marc.Writer, r *marc.Record, err error, id string) error {
	if err != nil {
		if IsSkip(err) {
			ctx.Skipped++
			log.WithFields(log.Fields{
				"sid":    ctx.SID,
				"id":     id,
				"reason": err.Error(),
			}).Debug("skipped record")
			return nil
		}
		return err
	}
	Rewrite(ctx, r)
	r.Clean()
	if err := w.WriteRecord(r); err != nil {
		return err
	}
	ctx.Processed++
	return nil
}

// invertName turns "Given Family" into "Family, Given" and leaves already
// inverted or single part names alone.
func invertName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, ",") {
		return name
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}
