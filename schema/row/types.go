// Package row contains a generic tabular record, the least common
// denominator between CSV exports and JSON lines. Sources that cannot serve
// OAI often hand over their catalog in this shape.
package row

import "strings"

// Record is one row of a tabular export.
type Record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Format      string   `json:"format,omitempty"`
	Year        string   `json:"year,omitempty"`
	Periodicity string   `json:"periodicity,omitempty"`
	Language    string   `json:"language,omitempty"`
	ISBN        []string `json:"isbn,omitempty"`
	ISSN        []string `json:"issn,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	URL         []string `json:"url,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Place       string   `json:"place,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	ParentTitle string   `json:"parent_title,omitempty"`
	Deleted     bool     `json:"deleted,omitempty"`
}

// Blank reports whether the row carries no usable data at all.
func (r *Record) Blank() bool {
	return strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Title) == ""
}
