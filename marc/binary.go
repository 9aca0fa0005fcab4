package marc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ISO 2709 framing bytes and size limits. Lengths and offsets are encoded as
// fixed-width decimal numbers, which caps record and field sizes.
const (
	recordTerminator  = 0x1d
	fieldTerminator   = 0x1e
	subfieldDelimiter = 0x1f

	maxRecordLength = 99999
	maxFieldLength  = 9999
)

// MarshalBinary renders the record in binary form: leader, directory, field
// data. Record length and base address in the leader are recomputed, the
// character coding position is set to unicode. Oversized fields or records
// are an error, the caller decides whether to skip the record.
func (r *Record) MarshalBinary() ([]byte, error) {
	if len(r.leader) != LeaderLength {
		return nil, ErrInvalidLeader
	}
	var dir, data bytes.Buffer
	for _, f := range r.Fields {
		if len(f.Tag) != 3 {
			return nil, fmt.Errorf("invalid tag: %q", f.Tag)
		}
		offset := data.Len()
		if f.IsControl() {
			data.WriteString(f.Data)
		} else {
			data.WriteString(indicator(f.Ind1))
			data.WriteString(indicator(f.Ind2))
			for _, sf := range f.Subfields {
				data.WriteByte(subfieldDelimiter)
				data.WriteString(sf.Code)
				data.WriteString(sf.Value)
			}
		}
		data.WriteByte(fieldTerminator)
		length := data.Len() - offset
		if length > maxFieldLength {
			return nil, fmt.Errorf("field %s too long: %d", f.Tag, length)
		}
		if offset > maxRecordLength {
			return nil, fmt.Errorf("record too long: offset %d", offset)
		}
		fmt.Fprintf(&dir, "%s%04d%05d", f.Tag, length, offset)
	}
	base := LeaderLength + dir.Len() + 1
	total := base + data.Len() + 1
	if total > maxRecordLength {
		return nil, fmt.Errorf("record too long: %d", total)
	}
	leader := []byte(r.leader)
	copy(leader[0:5], fmt.Sprintf("%05d", total))
	leader[9] = 'a'
	copy(leader[12:17], fmt.Sprintf("%05d", base))
	var buf bytes.Buffer
	buf.Grow(total)
	buf.Write(leader)
	buf.Write(dir.Bytes())
	buf.WriteByte(fieldTerminator)
	buf.Write(data.Bytes())
	buf.WriteByte(recordTerminator)
	return buf.Bytes(), nil
}

// ParseBinary decodes a single binary record. The slice must hold exactly one
// record, typically obtained from Reader.
func ParseBinary(p []byte) (*Record, error) {
	if len(p) < LeaderLength+2 {
		return nil, fmt.Errorf("record too short: %d", len(p))
	}
	leader := string(p[:LeaderLength])
	base, err := strconv.Atoi(leader[12:17])
	if err != nil {
		return nil, fmt.Errorf("invalid base address: %v", err)
	}
	if base < LeaderLength+1 || base > len(p) {
		return nil, fmt.Errorf("base address out of range: %d", base)
	}
	dir := p[LeaderLength : base-1]
	if len(dir)%12 != 0 {
		return nil, fmt.Errorf("invalid directory length: %d", len(dir))
	}
	rec := &Record{leader: leader}
	for i := 0; i < len(dir); i += 12 {
		entry := dir[i : i+12]
		tag := string(entry[0:3])
		length, err := strconv.Atoi(string(entry[3:7]))
		if err != nil {
			return nil, fmt.Errorf("invalid field length in %s: %v", tag, err)
		}
		offset, err := strconv.Atoi(string(entry[7:12]))
		if err != nil {
			return nil, fmt.Errorf("invalid field offset in %s: %v", tag, err)
		}
		start, end := base+offset, base+offset+length
		if length < 1 || end > len(p) {
			return nil, fmt.Errorf("field %s out of range: %d-%d", tag, start, end)
		}
		fdata := p[start : end-1] // strip field terminator
		if tag < "010" {
			rec.Fields = append(rec.Fields, Field{Tag: tag, Data: string(fdata)})
			continue
		}
		if len(fdata) < 2 {
			return nil, fmt.Errorf("field %s too short for indicators", tag)
		}
		f := Field{Tag: tag, Ind1: string(fdata[0:1]), Ind2: string(fdata[1:2])}
		for _, part := range bytes.Split(fdata[2:], []byte{subfieldDelimiter}) {
			if len(part) == 0 {
				continue
			}
			f.Subfields = append(f.Subfields, Subfield{
				Code:  string(part[:1]),
				Value: string(part[1:]),
			})
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec, nil
}

// Reader reads binary records off a stream, one at a time.
type Reader struct {
	br *bufio.Reader
}

// NewReader returns a reader for concatenated binary records, tolerating
// stray newlines between records.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next record, io.EOF at the clean end of the stream.
func (r *Reader) Next() (*Record, error) {
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == '\n' || b == '\r' {
			continue
		}
		if err := r.br.UnreadByte(); err != nil {
			return nil, err
		}
		break
	}
	peek, err := r.br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("truncated record length: %v", err)
	}
	length, err := strconv.Atoi(string(peek))
	if err != nil {
		return nil, fmt.Errorf("invalid record length: %q", peek)
	}
	if length < LeaderLength+2 {
		return nil, fmt.Errorf("implausible record length: %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, fmt.Errorf("short record: %v", err)
	}
	return ParseBinary(buf)
}

// Writer serializes records to an underlying stream. Close must be called
// once all records are written.
type Writer interface {
	WriteRecord(*Record) error
	Close() error
}

// BinaryWriter writes binary records back to back.
type BinaryWriter struct {
	w io.Writer
}

// NewBinaryWriter returns a Writer for binary output.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{w: w}
}

// WriteRecord writes a single record.
func (bw *BinaryWriter) WriteRecord(rec *Record) error {
	b, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = bw.w.Write(b)
	return err
}

// Close implements Writer, there is nothing to finalize for binary output.
func (bw *BinaryWriter) Close() error {
	return nil
}
