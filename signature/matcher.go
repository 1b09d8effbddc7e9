package signature

import "bytes"

// Matcher identifies headers against a catalog.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher returns a matcher over c, or over the built-in catalog when c is nil
func NewMatcher(c *Catalog) *Matcher {
	if c == nil {
		c = Builtin()
	}
	return &Matcher{catalog: c}
}

// Catalog returns the catalog the matcher scans
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// IsText reports whether header contains no zero byte.
// This is a rough filter: UTF-16 and UTF-32 text contain zero bytes and
// are left to the BOM records.
func IsText(header []byte) bool {
	return bytes.IndexByte(header, 0) < 0
}

// Scan runs the text heuristic and the ordered catalog scan without
// container disambiguation. A ZIP header yields the plain ZIP record.
func (m *Matcher) Scan(header []byte) Result {
	if IsText(header) {
		return Result{Kind: PlainText, Record: Text}
	}

	i := m.catalog.match(header)
	if i < 0 {
		return Result{Kind: NoMatch}
	}
	return identified(m.catalog.At(i))
}

// Identify returns the format of header. When the best match is the plain
// ZIP record, open is used to look inside the archive; a nil open leaves
// the result as plain ZIP.
//
// The returned error is only ever a *ContainerError. The Result is always
// usable: on error it is the plain ZIP record.
func (m *Matcher) Identify(header []byte, open ContainerOpener) (Result, error) {
	res := m.Scan(header)
	if res.Kind != Identified || !res.Record.Equal(Zip) {
		return res, nil
	}
	return Disambiguate(res.Record, open)
}
