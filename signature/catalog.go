package signature

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Catalog is an ordered, immutable list of records.
// Order is priority: the first record that fully matches wins.
type Catalog struct {
	records     []Record
	fingerprint uint64
}

// NewCatalog validates records and returns a catalog holding copies of them
func NewCatalog(records ...Record) (*Catalog, error) {
	c := &Catalog{records: make([]Record, 0, len(records))}
	if err := c.appendAll(records, 0); err != nil {
		return nil, err
	}
	c.fingerprint = fingerprint(c.records)
	return c, nil
}

// Extend returns a new catalog with records appended after the receiver's.
// Existing records keep their priority over appended ones.
func (c *Catalog) Extend(records ...Record) (*Catalog, error) {
	next := &Catalog{records: make([]Record, 0, len(c.records)+len(records))}
	next.records = append(next.records, c.records...)
	if err := next.appendAll(records, len(c.records)); err != nil {
		return nil, err
	}
	next.fingerprint = fingerprint(next.records)
	return next, nil
}

func (c *Catalog) appendAll(records []Record, base int) error {
	for i, r := range records {
		if err := validate(r); err != "" {
			return &RecordError{Index: base + i, Name: r.Name, Reason: err}
		}
		r.Pattern = r.Pattern.Clone()
		c.records = append(c.records, r)
	}
	return nil
}

func validate(r Record) string {
	switch {
	case r.Offset < 0:
		return "negative offset"
	case len(r.Pattern) == 0:
		return "empty pattern"
	case r.end() > MaxHeaderSize:
		return "pattern extends past MaxHeaderSize"
	case r.MIME == "":
		return "empty MIME type"
	}
	return ""
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.records)
}

// At returns a copy of the i-th record
func (c *Catalog) At(i int) Record {
	r := c.records[i]
	r.Pattern = r.Pattern.Clone()
	return r
}

// Records returns a copy of all records in priority order
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	for i := range c.records {
		out[i] = c.At(i)
	}
	return out
}

// Fingerprint returns an xxhash digest of the catalog contents and order.
// Two catalogs with the same records in the same order share a fingerprint.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

// ByExtensions returns the records whose extension list contains any of the
// comma separated extensions in csv. Comparison ignores case, spaces and a leading dot.
func (c *Catalog) ByExtensions(csv string) []Record {
	wanted := make(map[string]bool)
	for _, ext := range strings.Split(csv, ",") {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			wanted[ext] = true
		}
	}

	var result []Record
	for i, r := range c.records {
		for _, ext := range r.Extensions() {
			if wanted[ext] {
				result = append(result, c.At(i))
				break
			}
		}
	}
	return result
}

// match returns the index of the first record that fully matches header, or -1
func (c *Catalog) match(header []byte) int {
	for i := range c.records {
		if c.records[i].Matches(header) {
			return i
		}
	}
	return -1
}

func fingerprint(records []Record) uint64 {
	h := xxhash.New()
	var num [8]byte
	for _, r := range records {
		binary.LittleEndian.PutUint64(num[:], uint64(r.Offset))
		_, _ = h.Write(num[:])
		_, _ = h.WriteString(r.Pattern.String())
		_, _ = h.WriteString("\x00" + r.Extension + "\x00" + r.MIME + "\x00")
	}
	return h.Sum64()
}
