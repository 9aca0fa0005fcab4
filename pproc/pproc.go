// Package pproc runs a function over every record of a stream in parallel.
// The input is cut into records by a bufio.SplitFunc and results are written
// to a single writer in arbitrary order, which fits validation and
// extraction passes where per-record order does not matter.
package pproc

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/miku/fincmarc/xmlsplit"
	"golang.org/x/sync/errgroup"
)

// ProcessFunc is applied to each record. A nil result with a nil error
// writes nothing, which is how a function skips a record.
type ProcessFunc func(p []byte) ([]byte, error)

// Processor applies a ProcessFunc to a stream of records.
type Processor struct {
	r             io.Reader
	w             io.Writer
	f             ProcessFunc
	numWorkers    int
	maxBufferSize int
	maxTokenSize  int
	split         bufio.SplitFunc
}

// Option configures a processor.
type Option func(*Processor)

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.numWorkers = n
		}
	}
}

// WithMaxBufferSize sets the soft limit for buffered input.
func WithMaxBufferSize(n int) Option {
	return func(p *Processor) {
		p.maxBufferSize = n
	}
}

// WithMaxTokenSize sets the hard limit for a single record.
func WithMaxTokenSize(n int) Option {
	return func(p *Processor) {
		p.maxTokenSize = n
	}
}

// WithSplitFunc replaces the default record element splitter.
func WithSplitFunc(split bufio.SplitFunc) Option {
	return func(p *Processor) {
		p.split = split
	}
}

// New creates a processor reading records from r and writing results to w.
// By default the input is split on "record" elements.
func New(r io.Reader, w io.Writer, f ProcessFunc, opts ...Option) *Processor {
	p := &Processor{
		r:             r,
		w:             w,
		f:             f,
		numWorkers:    runtime.NumCPU(),
		maxBufferSize: xmlsplit.DefaultMaxBufferSize,
		maxTokenSize:  xmlsplit.DefaultMaxTokenSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.split == nil {
		p.split = xmlsplit.TagSplitter("record", p.maxBufferSize, p.maxTokenSize)
	}
	return p
}

// Run processes the stream and blocks until the input is exhausted or a
// worker fails. The first error cancels the group.
func (p *Processor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		work    = make(chan []byte)
		writeMu sync.Mutex
	)
	for i := 0; i < p.numWorkers; i++ {
		g.Go(func() error {
			for b := range work {
				out, err := p.f(b)
				if err != nil {
					return err
				}
				if len(out) == 0 {
					continue
				}
				writeMu.Lock()
				_, err = p.w.Write(out)
				writeMu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(work)
		scanner := bufio.NewScanner(p.r)
		scanner.Split(p.split)
		scanner.Buffer(make([]byte, 0, 64*1024), p.maxTokenSize)
		for scanner.Scan() {
			b := make([]byte, len(scanner.Bytes()))
			copy(b, scanner.Bytes())
			select {
			case work <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	return g.Wait()
}
