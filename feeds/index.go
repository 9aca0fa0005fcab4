package feeds

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/adrg/xdg"
	"github.com/miku/fincmarc"
	"github.com/miku/fincmarc/atomicfile"
	"github.com/sethgrid/pester"
)

const DefaultCacheTTL = 24 * time.Hour

// File is one entry of a server generated directory listing.
type File struct {
	Name         string
	URL          string
	LastModified time.Time
	Size         string
}

// DumpIndex scrapes bulk dump listings as served by plain autoindex
// pages, like https://ftp.ncbi.nlm.nih.gov/pubmed/updatefiles/. Listings
// change rarely, so they are cached on disk for a while.
type DumpIndex struct {
	BaseURL  string
	Pattern  *regexp.Regexp
	CacheTTL time.Duration
	CacheDir string
	Client   Doer
}

// NewDumpIndex creates an index scraper with a retrying client and
// default cache settings.
func NewDumpIndex(baseURL string, pattern *regexp.Regexp) (*DumpIndex, error) {
	cacheDir, err := xdg.CacheFile(filepath.Join(fincmarc.AppName, "index"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = 3
	client.RetryOnHTTP429 = true
	client.Timeout = 30 * time.Second
	return &DumpIndex{
		BaseURL:  baseURL,
		Pattern:  pattern,
		CacheTTL: DefaultCacheTTL,
		CacheDir: cacheDir,
		Client:   client,
	}, nil
}

// hashString returns a hex-encoded hash of a string.
func hashString(s string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (d *DumpIndex) cachePath() string {
	return filepath.Join(d.CacheDir, hashString(d.BaseURL)+".html")
}

// cached returns the cached listing, or nil if absent or expired.
func (d *DumpIndex) cached() ([]byte, error) {
	info, err := os.Stat(d.cachePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > d.CacheTTL {
		return nil, nil
	}
	return os.ReadFile(d.cachePath())
}

func (d *DumpIndex) fetch() ([]byte, error) {
	b, err := d.cached()
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	req, err := http.NewRequest("GET", d.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL, status code: %d", resp.StatusCode)
	}
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(d.cachePath(), b, 0644); err != nil {
		return nil, err
	}
	return b, nil
}

// Files retrieves the listing and returns the entries matching the
// pattern. Autoindex pages put name, date and size in one text line, we
// scan the line for the fields following the link.
func (d *DumpIndex) Files() ([]File, error) {
	b, err := d.fetch()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	var files []File
	doc.Find("pre a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !d.Pattern.MatchString(href) {
			return
		}
		parts := strings.Fields(s.Parent().Text())
		for j, part := range parts {
			if part == href && j+3 < len(parts) {
				lastModified, err := time.Parse("2006-01-02 15:04", parts[j+1]+" "+parts[j+2])
				if err != nil {
					continue
				}
				files = append(files, File{
					Name:         href,
					URL:          d.BaseURL + href,
					LastModified: lastModified,
					Size:         parts[j+3],
				})
				break
			}
		}
	})
	return files, nil
}

// Download fetches a single listed file. The file appears under its
// final name only after a complete download.
func (d *DumpIndex) Download(f File, path string) error {
	req, err := http.NewRequest("GET", f.URL, nil)
	if err != nil {
		return err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch URL, status code: %d", resp.StatusCode)
	}
	af, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(af, resp.Body); err != nil {
		af.Abort()
		return err
	}
	return af.Close()
}

// FilterFiles returns the entries for which f returns true.
func FilterFiles(files []File, f func(File) bool) (result []File) {
	for _, fi := range files {
		if f(fi) {
			result = append(result, fi)
		}
	}
	return
}
