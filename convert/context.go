package convert

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/miku/fincmarc"
)

// Context carries the state of one conversion run: the source id, the map
// from local to canonical identifiers and a few counters. A context belongs
// to exactly one run and is mutated by a single goroutine, records are
// processed strictly in input order.
type Context struct {
	SID        string
	Collection string
	RunID      string
	// Pattern describes the shape of raw local identifiers for this
	// source. When set, only matching values are considered for cross
	// reference resolution.
	Pattern    *regexp.Regexp
	Processed  int64
	Skipped    int64
	Unresolved int64

	ids map[string]string
}

// NewContext returns a fresh context for one run.
func NewContext(sid string) *Context {
	return &Context{
		SID:   sid,
		RunID: uuid.New().String(),
		ids:   make(map[string]string),
	}
}

// Register maps a local identifier to its canonical form and returns it.
// Registration is idempotent and already canonical values pass through
// unchanged, so the map only ever grows raw to canonical entries.
func (ctx *Context) Register(localID string) string {
	localID = strings.TrimSpace(localID)
	if localID == "" {
		return ""
	}
	if strings.HasPrefix(localID, fincmarc.Namespace+"-") {
		return localID
	}
	canonical, ok := ctx.ids[localID]
	if !ok {
		canonical = fincmarc.CanonicalID(ctx.SID, localID)
		ctx.ids[localID] = canonical
	}
	return canonical
}

// Resolve looks up the canonical identifier for a local identifier
// registered earlier in the run.
func (ctx *Context) Resolve(localID string) (string, bool) {
	canonical, ok := ctx.ids[strings.TrimSpace(localID)]
	return canonical, ok
}

// Seen returns the number of registered identifiers.
func (ctx *Context) Seen() int {
	return len(ctx.ids)
}
