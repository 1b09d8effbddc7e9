package signature

import "strings"

// MaxHeaderSize is the number of leading bytes the matcher looks at.
// Some formats carry their signature at offset 512.
const MaxHeaderSize = 560

// Record describes one known format
type Record struct {
	// Name is a descriptive label such as "PDF" or "TIFF_LE"; it plays no part in matching.
	Name string

	// Pattern must match the header starting at Offset.
	Pattern Pattern

	// Offset is the position in the header where Pattern starts.
	Offset int

	// Extension is a single extension or a comma separated list ("dll, exe").
	Extension string

	// MIME is the media type reported for this format.
	MIME string
}

// Extensions splits Extension into lower-case, trimmed, non-empty extensions
func (r Record) Extensions() []string {
	var exts []string
	for _, ext := range strings.Split(r.Extension, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// Equal reports whether two records describe the same signature.
// Name is ignored.
func (r Record) Equal(other Record) bool {
	return r.Offset == other.Offset &&
		r.Extension == other.Extension &&
		r.MIME == other.MIME &&
		r.Pattern.Equal(other.Pattern)
}

// Matches reports whether the record's pattern fully matches header
func (r Record) Matches(header []byte) bool {
	return r.Pattern.MatchAt(header, r.Offset)
}

// end is the first header position past the pattern window
func (r Record) end() int {
	return r.Offset + len(r.Pattern)
}
