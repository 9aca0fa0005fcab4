// Package feeds manages raw data feeds and conversion artifacts on disk:
// deterministic file names per source and date, bounded retention of
// historical files, harvest helpers and merge utilities.
package feeds

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/miku/fincmarc/atomicfile"
	"github.com/miku/fincmarc/dateutil"
	log "github.com/sirupsen/logrus"
)

const stampLayout = "20060102"

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// OutputFilename returns the artifact name for a conversion run of a
// source at a given date, like "28-output-20130227.xml". Names for one
// source sort by recency.
func OutputFilename(sid string, t time.Time, ext string) string {
	return fmt.Sprintf("%s-output-%s.%s", sid, t.Format(stampLayout), ext)
}

// InputFilename returns the artifact name for a raw harvest file.
func InputFilename(sid string, t time.Time, ext string) string {
	return fmt.Sprintf("%s-input-%s.%s", sid, t.Format(stampLayout), ext)
}

// artifactPattern matches artifacts of one source and kind and captures
// the date stamp. Artifacts of other sources sharing the directory never
// match.
func artifactPattern(sid, kind string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(sid) + `-` + kind + `-([0-9]{8})\.`)
}

// artifacts lists matching file names in dir, oldest first.
func artifacts(dir, sid, kind string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	pattern := artifactPattern(sid, kind)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a := pattern.FindStringSubmatch(names[i])[1]
		b := pattern.FindStringSubmatch(names[j])[1]
		return a < b
	})
	return names, nil
}

// Outputs lists output artifacts for a source, oldest first.
func Outputs(dir, sid string) ([]string, error) {
	return artifacts(dir, sid, "output")
}

// Inputs lists input artifacts for a source, oldest first.
func Inputs(dir, sid string) ([]string, error) {
	return artifacts(dir, sid, "input")
}

// prune removes all but the newest keep artifacts of one source. A keep
// of zero or less disables pruning. Failing deletions are logged and
// skipped, a file vanishing between list and delete is not an error.
func prune(dir, sid, kind string, keep int) error {
	if keep <= 0 {
		return nil
	}
	names, err := artifacts(dir, sid, kind)
	if err != nil {
		return err
	}
	if len(names) <= keep {
		return nil
	}
	for _, name := range names[:len(names)-keep] {
		p := filepath.Join(dir, name)
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.WithFields(log.Fields{
				"path": p,
				"err":  err,
			}).Warn("prune failed, skipping")
			continue
		}
		log.WithFields(log.Fields{"path": p}).Debug("pruned")
	}
	return nil
}

// PruneOutputs enforces the retention policy on output artifacts.
func PruneOutputs(dir, sid string, keep int) error {
	return prune(dir, sid, "output", keep)
}

// PruneInputs enforces the retention policy on input artifacts.
func PruneInputs(dir, sid string, keep int) error {
	return prune(dir, sid, "input", keep)
}

// CreateOutput opens a fresh output artifact. The file appears under its
// final name on Close only, an aborted run leaves no partial artifact.
func CreateOutput(dir, sid string, t time.Time, ext string) (*atomicfile.File, error) {
	return atomicfile.New(filepath.Join(dir, OutputFilename(sid, t, ext)))
}

// MissingDays reports the days within the span for which no input
// artifact exists yet, useful for backfills.
func MissingDays(dir, sid, ext string, from, until time.Time) (missing []time.Time, err error) {
	for _, iv := range dateutil.Daily(from, until) {
		p := filepath.Join(dir, InputFilename(sid, iv.Start, ext))
		_, err := os.Stat(p)
		switch {
		case err == nil:
		case os.IsNotExist(err):
			missing = append(missing, iv.Start)
		default:
			return nil, err
		}
	}
	return missing, nil
}
