// Package config collects runtime settings for the fincmarc tools.
package config

import (
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
	"github.com/miku/fincmarc"
)

// Config for feed handling and conversions.
type Config struct {
	// DataDir is the generic data dir for all fincmarc tools.
	DataDir string
	// FeedDir is the directory for raw input artifacts only. Can be
	// anything, but recommended to be a subdirectory of the DataDir.
	FeedDir string
	// OutputDir is where conversion artifacts end up.
	OutputDir string
	// SID is the source identifier to process.
	SID string
	// Collection is the label recorded with each converted record.
	Collection string
	// EndpointURL for OAI-PMH.
	EndpointURL string
	// Format is the metadata format to request from the endpoint.
	Format string
	// Set restricts a harvest to one OAI-PMH set.
	Set string
	// Date is the artifact stamp for a run.
	Date time.Time
	// Keep is the number of artifacts to keep per source and kind, zero
	// keeps everything.
	Keep int
	// MaxRetries is a generic retry count.
	MaxRetries int
	// Timeout is a generic operation timeout.
	Timeout time.Duration
}

// Default returns a config with directories below XDG_DATA_HOME and
// moderate retry settings.
func Default() *Config {
	dataDir := path.Join(xdg.DataHome, fincmarc.AppName)
	return &Config{
		DataDir:    dataDir,
		FeedDir:    path.Join(dataDir, "feeds"),
		OutputDir:  path.Join(dataDir, "outputs"),
		Format:     "oai_dc",
		Keep:       3,
		MaxRetries: 3,
		Timeout:    3600 * time.Second,
	}
}

// FromEnv applies FINCMARC_DATA_DIR, FINCMARC_FEED_DIR and
// FINCMARC_OUTPUT_DIR overrides.
func (c *Config) FromEnv() *Config {
	if v := os.Getenv("FINCMARC_DATA_DIR"); v != "" {
		c.SetDataDir(v)
	}
	if v := os.Getenv("FINCMARC_FEED_DIR"); v != "" {
		c.FeedDir = v
	}
	if v := os.Getenv("FINCMARC_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	return c
}

// SetDataDir moves the derived directories below a new data dir.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.FeedDir = path.Join(dir, "feeds")
	c.OutputDir = path.Join(dir, "outputs")
}

// EnsureDirs creates the artifact directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.FeedDir, c.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
