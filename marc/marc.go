// Package marc implements a small MARC 21 record model with binary (ISO 2709)
// and MARCXML serializations, geared towards building records in converters,
// not towards full round-tripping of arbitrary catalog data.
package marc

import (
	"errors"
	"strings"
)

// LeaderLength is the fixed size of the record leader.
const LeaderLength = 24

// DefaultLeader is a generic monograph leader, format tables override it.
const DefaultLeader = "     nam  22        4500"

var ErrInvalidLeader = errors.New("invalid leader")

// Subfield is a single code and value pair. Repeated codes are allowed and
// order is kept.
type Subfield struct {
	Code  string
	Value string
}

// Field is one variable field. Control fields (tag below 010) only carry
// Data, data fields carry indicators and subfields.
type Field struct {
	Tag       string
	Data      string
	Ind1      string
	Ind2      string
	Subfields []Subfield
}

// IsControl reports whether the tag denotes a control field.
func (f *Field) IsControl() bool {
	return f.Tag < "010"
}

// Value returns the first value for a subfield code, or the empty string.
func (f *Field) Value(code string) string {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// Record is an ordered list of fields plus a fixed-length leader.
type Record struct {
	leader string
	Fields []Field
}

// NewRecord returns a record with the default leader and no fields.
func NewRecord() *Record {
	return &Record{leader: DefaultLeader}
}

// Leader returns the 24 character leader.
func (r *Record) Leader() string {
	return r.leader
}

// SetLeader sets the leader, which must be exactly 24 characters long.
// Malformed leaders are rejected, never truncated or padded.
func (r *Record) SetLeader(leader string) error {
	if len(leader) != LeaderLength {
		return ErrInvalidLeader
	}
	r.leader = leader
	return nil
}

// AddControlField appends a control field. Empty data adds nothing.
func (r *Record) AddControlField(tag, data string) {
	if data == "" {
		return
	}
	r.Fields = append(r.Fields, Field{Tag: tag, Data: data})
}

// SetControlField replaces the data of the first field with the given tag or
// appends a new field, if none exists yet.
func (r *Record) SetControlField(tag, data string) {
	for i := range r.Fields {
		if r.Fields[i].Tag == tag {
			r.Fields[i].Data = data
			return
		}
	}
	r.AddControlField(tag, data)
}

// Add appends a data field with blank indicators from code and value pairs.
// Pairs with empty values are dropped and if no value remains, no field is
// added at all, so callers can pass unvalidated values and get the field
// omitted for free.
func (r *Record) Add(tag string, pairs ...string) {
	f := Field{Tag: tag, Ind1: " ", Ind2: " "}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		f.Subfields = append(f.Subfields, Subfield{Code: pairs[i], Value: pairs[i+1]})
	}
	if len(f.Subfields) == 0 {
		return
	}
	r.Fields = append(r.Fields, f)
}

// AddField appends a field verbatim, for the rare case where indicators
// matter. Empty indicators are normalized to blanks.
func (r *Record) AddField(f Field) {
	if !f.IsControl() {
		f.Ind1 = indicator(f.Ind1)
		f.Ind2 = indicator(f.Ind2)
	}
	r.Fields = append(r.Fields, f)
}

// ControlField returns the data of the first field with the given tag.
func (r *Record) ControlField(tag string) string {
	for i := range r.Fields {
		if r.Fields[i].Tag == tag {
			return r.Fields[i].Data
		}
	}
	return ""
}

// First returns the first value for tag and subfield code, or the empty
// string.
func (r *Record) First(tag, code string) string {
	for i := range r.Fields {
		if r.Fields[i].Tag == tag {
			if v := r.Fields[i].Value(code); v != "" {
				return v
			}
		}
	}
	return ""
}

// FieldsWithTag returns pointers to all fields with the given tag, in order.
// The pointers stay valid until the next append to the record.
func (r *Record) FieldsWithTag(tag string) (fields []*Field) {
	for i := range r.Fields {
		if r.Fields[i].Tag == tag {
			fields = append(fields, &r.Fields[i])
		}
	}
	return fields
}

// Clean trims subfield values and drops empty subfields, then drops fields
// that carry no content at all.
func (r *Record) Clean() {
	var fields []Field
	for _, f := range r.Fields {
		if f.IsControl() {
			if f.Data == "" {
				continue
			}
			fields = append(fields, f)
			continue
		}
		var sfs []Subfield
		for _, sf := range f.Subfields {
			sf.Value = strings.TrimSpace(sf.Value)
			if sf.Value == "" {
				continue
			}
			sfs = append(sfs, sf)
		}
		if len(sfs) == 0 {
			continue
		}
		f.Subfields = sfs
		fields = append(fields, f)
	}
	r.Fields = fields
}

func indicator(s string) string {
	if len(s) != 1 {
		return " "
	}
	return s
}
