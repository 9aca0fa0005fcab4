package feeds

import (
	"os"

	"github.com/miku/clam"
)

// OAIHarvester drives incremental OAI-PMH harvests through metha, which
// keeps a cache of monthly slices below its base directory. Repeated
// syncs only fetch what is new.
type OAIHarvester struct {
	Endpoint string
	Format   string
	Set      string
	BaseDir  string
}

func (h *OAIHarvester) format() string {
	if h.Format == "" {
		return "oai_dc"
	}
	return h.Format
}

// Sync updates the local cache from the endpoint.
func (h *OAIHarvester) Sync() error {
	t, m := h.command("metha-sync")
	return clam.Run(t+" {{ endpoint }}", m)
}

// Merge concatenates the cached harvest into a single temporary file and
// returns it opened for reading. The caller removes the file when done.
func (h *OAIHarvester) Merge() (*os.File, error) {
	t, m := h.command("metha-cat")
	return clam.RunFile(t+" {{ endpoint }} > {{ output }}", m)
}

func (h *OAIHarvester) command(name string) (string, clam.Map) {
	m := clam.Map{
		"format":   h.format(),
		"endpoint": h.Endpoint,
	}
	t := name + " -format {{ format }}"
	if h.BaseDir != "" {
		m["dir"] = h.BaseDir
		t += " -base-dir {{ dir }}"
	}
	if h.Set != "" {
		m["set"] = h.Set
		t += " -set {{ set }}"
	}
	return t, m
}
