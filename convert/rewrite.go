package convert

import (
	"strings"

	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/marc"
)

// linkTags are the cross reference fields whose subfield w carries a record
// control number: host item, preceding entry, succeeding entry and other
// related entries.
var linkTags = []string{"773", "780", "785", "787"}

// Rewrite brings the record control number into canonical form, registers
// it, and then resolves cross references against the identifiers seen so
// far in the run. Registration happens before any reference is looked at,
// later records can link back to earlier ones but not the other way around.
// Unresolved references stay as found and are only counted. Running Rewrite
// twice over a record changes nothing.
func Rewrite(ctx *Context, r *marc.Record) {
	if id := strings.TrimSpace(r.ControlField("001")); id != "" {
		r.SetControlField("001", ctx.Register(id))
	}
	for _, tag := range linkTags {
		for _, f := range r.FieldsWithTag(tag) {
			for i, sf := range f.Subfields {
				if sf.Code != "w" {
					continue
				}
				v := strings.TrimSpace(sf.Value)
				if v == "" || strings.HasPrefix(v, fincmarc.Namespace+"-") {
					continue
				}
				if ctx.Pattern != nil && !ctx.Pattern.MatchString(v) {
					continue
				}
				if canonical, ok := ctx.Resolve(v); ok {
					f.Subfields[i].Value = canonical
				} else {
					ctx.Unresolved++
				}
			}
		}
	}
}
