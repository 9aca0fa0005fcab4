// Package fincmarc contains shared constants for the fincmarc tools, which
// normalize metadata from various sources into MARC for the finc index.
package fincmarc

const (
	// AppName is used for cache and data directory names.
	AppName = "fincmarc"
	// Version of tools and library.
	Version = "0.1.4"
	// Namespace prefixes every canonical record identifier.
	Namespace = "finc"
)

// CanonicalID builds the canonical identifier for a record from a source id
// and a source-local identifier, e.g. "finc-35-oai:example.org:123". The local
// identifier is carried verbatim.
func CanonicalID(sid, localID string) string {
	return Namespace + "-" + sid + "-" + localID
}
