// Package xmlsplit cuts a stream of tagged markup into single record-level
// elements without parsing XML. It only looks for matching opening and
// closing tags of one element name, which makes it fast enough to slice
// multi-gigabyte harvest files, and forgiving enough to survive the slightly
// broken XML that concatenated OAI responses tend to be.
package xmlsplit

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	// DefaultMaxBufferSize is the soft limit after which the splitter starts
	// scanning buffered data for complete elements.
	DefaultMaxBufferSize = 1 << 24
	// DefaultMaxTokenSize is the hard limit for a single element.
	DefaultMaxTokenSize = 1 << 26
)

var (
	ErrMaxTokenSizeExceeded = errors.New("max token size exceeded")
	ErrInvalidSplitter      = errors.New("invalid splitter")

	errInvalidSplitFunc = func(data []byte, atEOF bool) (int, []byte, error) {
		return 0, nil, ErrInvalidSplitter
	}
)

// tagSplitter carries leftover bytes between split calls.
type tagSplitter struct {
	tag           string
	maxBufferSize int
	maxTokenSize  int
	buf           []byte
}

// TagSplitter returns a bufio.SplitFunc that splits a stream on elements of
// the given name, one complete element per token, nested content included.
// Bytes outside the element, like an enclosing envelope, are skipped. A
// truncated element at the end of the stream ends the scan without an error
// and without invalidating earlier tokens; a single element larger than
// maxTokenSize aborts with ErrMaxTokenSizeExceeded.
func TagSplitter(tag string, maxBufferSize, maxTokenSize int) bufio.SplitFunc {
	if len(tag) == 0 || maxBufferSize < 0 || maxTokenSize < maxBufferSize {
		return errInvalidSplitFunc
	}
	s := &tagSplitter{
		tag:           tag,
		maxBufferSize: maxBufferSize,
		maxTokenSize:  maxTokenSize,
	}
	return s.split
}

// NewScanner returns a scanner over single elements of the given name, with
// default size limits. The scanner exhausts the reader; re-splitting needs a
// fresh one.
func NewScanner(r io.Reader, tag string) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(TagSplitter(tag, DefaultMaxBufferSize, DefaultMaxTokenSize))
	scanner.Buffer(make([]byte, 0, 64*1024), DefaultMaxTokenSize)
	return scanner
}

func (s *tagSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Serve from carried bytes first.
	if len(s.buf) > 0 {
		start, end := element(string(s.buf), s.tag)
		switch {
		case start == -1:
			s.discard()
		case end == -1 && !atEOF:
			s.buf = append(s.buf, data...)
			if len(s.buf) > s.maxTokenSize {
				return 0, nil, ErrMaxTokenSizeExceeded
			}
			return len(data), nil, nil
		case end == -1 && atEOF && len(data) == 0:
			// Element truncated at end of stream, stop here.
			s.buf = nil
			return 0, nil, io.EOF
		case end == -1 && atEOF:
			// The final chunk below may still complete the element.
		default:
			token = s.buf[start:end]
			s.buf = s.buf[end:]
			return 0, token, nil
		}
	}
	s.buf = append(s.buf, data...)
	if atEOF {
		if len(s.buf) == 0 {
			return 0, nil, io.EOF
		}
		start, end := element(string(s.buf), s.tag)
		if start == -1 || end == -1 {
			s.buf = nil
			return len(data), nil, io.EOF
		}
		token = s.buf[start:end]
		s.buf = s.buf[end:]
		return len(data), token, nil
	}
	if len(s.buf) < s.maxBufferSize {
		return len(data), nil, nil
	}
	start, end := element(string(s.buf), s.tag)
	switch {
	case start == -1:
		s.discard()
		return len(data), nil, nil
	case end == -1:
		if len(s.buf) > s.maxTokenSize {
			return len(data), nil, ErrMaxTokenSizeExceeded
		}
		return len(data), nil, nil
	}
	token = s.buf[start:end]
	s.buf = s.buf[end:]
	return len(data), token, nil
}

// discard drops buffered bytes that cannot start an element anymore, keeping
// a short tail in case an opening tag is cut at a read boundary.
func (s *tagSplitter) discard() {
	keep := len(s.tag) + 1
	if len(s.buf) <= keep {
		return
	}
	s.buf = append(s.buf[:0], s.buf[len(s.buf)-keep:]...)
}

func tagBoundary(ch byte) bool {
	switch ch {
	case '>', ' ', '/', '\n', '\t', '\r':
		return true
	}
	return false
}

// element locates the first complete element of the given name, including
// nested elements of the same name and self-closing forms. The returned end
// points just past the closing tag. If an element opens but does not close
// within the input, end is -1; if none opens at all, both are -1.
func element(input, tag string) (start, end int) {
	var (
		openTag  = "<" + tag
		closeTag = "</" + tag + ">"
		i        int
	)
	for i < len(input) {
		from := strings.Index(input[i:], openTag)
		if from == -1 {
			return -1, -1
		}
		from += i
		// A name match alone is not enough, "<recordData" must not count
		// as "<record".
		if boundary := from + len(openTag); boundary < len(input) && !tagBoundary(input[boundary]) {
			i = from + 1
			continue
		}
		gt := strings.Index(input[from:], ">")
		if gt == -1 {
			return from, -1
		}
		gt += from
		if gt > 0 && input[gt-1] == '/' {
			return from, gt + 1
		}
		if gt+1 == len(input) {
			// Opening tag ends flush with the input, wait for more.
			return from, -1
		}
		var (
			depth = 1
			j     = gt + 1
		)
		for j < len(input) && depth > 0 {
			var (
				nextOpen  = strings.Index(input[j:], openTag)
				nextClose = strings.Index(input[j:], closeTag)
			)
			if nextClose == -1 {
				return from, -1
			}
			if nextOpen != -1 && nextOpen < nextClose {
				nextOpen += j
				if boundary := nextOpen + len(openTag); boundary < len(input) && tagBoundary(input[boundary]) {
					depth++
				}
				j = nextOpen + 1
			} else {
				nextClose += j
				depth--
				if depth == 0 {
					return from, nextClose + len(closeTag)
				}
				j = nextClose + len(closeTag)
			}
		}
		// No complete element from this opening tag, try the next one.
		i = gt + 1
	}
	return -1, -1
}
