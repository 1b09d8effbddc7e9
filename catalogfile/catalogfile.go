// Package catalogfile reads and writes signature catalogs as XML.
//
// A catalog file lists records in priority order:
//
//	<catalog>
//	  <signature name="PDF" extension="pdf" mime="application/pdf">25 50 44 46</signature>
//	  <signature name="PPT" offset="512" extension="ppt" mime="application/mspowerpoint">FD FF FF FF ?? 00 00 00</signature>
//	</catalog>
//
// Patterns are hex bytes separated by optional whitespace, with "??" for a
// wildcard position.
package catalogfile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gobeaver/filesig/signature"
)

// ErrMalformed is returned when a catalog file cannot be decoded
var ErrMalformed = errors.New("malformed catalog file")

type document struct {
	XMLName    xml.Name  `xml:"catalog"`
	Signatures []element `xml:"signature"`
}

type element struct {
	Name      string `xml:"name,attr,omitempty"`
	Offset    int    `xml:"offset,attr,omitempty"`
	Extension string `xml:"extension,attr"`
	MIME      string `xml:"mime,attr"`
	Pattern   string `xml:",chardata"`
}

// Load decodes the records of a catalog file in file order.
// Records are not validated; build a catalog from them for that.
func Load(r io.Reader) ([]signature.Record, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	records := make([]signature.Record, 0, len(doc.Signatures))
	for i, el := range doc.Signatures {
		pattern, err := signature.ParsePattern(el.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: signature %d (%s): %w", ErrMalformed, i, el.Name, err)
		}
		records = append(records, signature.Record{
			Name:      el.Name,
			Pattern:   pattern,
			Offset:    el.Offset,
			Extension: el.Extension,
			MIME:      el.MIME,
		})
	}
	return records, nil
}

// Save encodes records as an indented catalog file
func Save(w io.Writer, records []signature.Record) error {
	doc := document{Signatures: make([]element, 0, len(records))}
	for _, r := range records {
		doc.Signatures = append(doc.Signatures, element{
			Name:      r.Name,
			Offset:    r.Offset,
			Extension: r.Extension,
			MIME:      r.MIME,
			Pattern:   r.Pattern.String(),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// LoadFile decodes the catalog file at path
func LoadFile(path string) ([]signature.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// SaveFile writes records to path. The file is written to a temporary
// sibling first and renamed into place, so a watcher never sees a partial
// catalog.
func SaveFile(path string, records []signature.Record) error {
	tmpPath := path + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := Save(tmpFile, records); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// LoadCatalog appends the records stored at path to base and returns the
// resulting catalog. A nil base means the built-in catalog. The records are
// validated as part of building the catalog.
func LoadCatalog(path string, base *signature.Catalog) (*signature.Catalog, error) {
	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = signature.Builtin()
	}
	return base.Extend(records...)
}
