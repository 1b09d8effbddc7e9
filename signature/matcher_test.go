package signature

import (
	"bytes"
	"testing"
)

// header places p at offset in a zero-filled MaxHeaderSize buffer
func header(offset int, p []byte) []byte {
	h := make([]byte, MaxHeaderSize)
	copy(h[offset:], p)
	return h
}

// render fills wildcard positions with fill
func render(p Pattern, fill byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		if v, ok := b.Value(); ok {
			out[i] = v
		} else {
			out[i] = fill
		}
	}
	return out
}

func TestIdentify(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		name     string
		header   []byte
		wantKind Kind
		wantExt  string
		wantMIME string
	}{
		{
			name:     "PDF",
			header:   header(0, []byte{0x25, 0x50, 0x44, 0x46}),
			wantKind: Identified,
			wantExt:  "pdf",
			wantMIME: "application/pdf",
		},
		{
			name:     "PNG",
			header:   header(0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}),
			wantKind: Identified,
			wantExt:  "png",
			wantMIME: "image/png",
		},
		{
			name:     "bzip2 stream",
			header:   header(0, []byte("BZh91AY&SY")),
			wantKind: Identified,
			wantExt:  "bz2,tar,bz2,tbz2,tb2",
			wantMIME: "application/x-bzip2",
		},
		{
			name:     "Word at offset 512",
			header:   header(512, []byte{0xEC, 0xA5, 0xC1, 0x00}),
			wantKind: Identified,
			wantExt:  "doc",
			wantMIME: "application/msword",
		},
		{
			name:     "WAVE with size bytes",
			header:   header(0, []byte("RIFF\x24\x08\x00\x00WAVEfmt ")),
			wantKind: Identified,
			wantExt:  "wav",
			wantMIME: "audio/wav",
		},
		{
			name:     "plain ascii",
			header:   []byte("hello, world\n"),
			wantKind: PlainText,
			wantExt:  "txt",
			wantMIME: "text/plain",
		},
		{
			name:     "text heuristic beats binary signature",
			header:   []byte("%PDF-1.4 no zero byte here"),
			wantKind: PlainText,
			wantExt:  "txt",
			wantMIME: "text/plain",
		},
		{
			name:     "non-zero bytes matching nothing",
			header:   bytes.Repeat([]byte{0xAB}, MaxHeaderSize),
			wantKind: PlainText,
			wantExt:  "txt",
			wantMIME: "text/plain",
		},
		{
			name:     "binary matching nothing",
			header:   header(0, []byte{0x01, 0x02, 0x03}),
			wantKind: NoMatch,
		},
		{
			name:     "all zero",
			header:   make([]byte, MaxHeaderSize),
			wantKind: NoMatch,
		},
		{
			name:     "short buffer",
			header:   []byte{0x25, 0x50, 0x00},
			wantKind: NoMatch,
		},
		{
			name:     "empty buffer has no zero byte",
			header:   []byte{},
			wantKind: PlainText,
			wantExt:  "txt",
			wantMIME: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Identify(tt.header, nil)
			if err != nil {
				t.Fatalf("Identify() error = %v", err)
			}
			if res.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", res.Kind, tt.wantKind)
			}
			if res.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", res.Extension(), tt.wantExt)
			}
			if res.MIME() != tt.wantMIME {
				t.Errorf("MIME() = %q, want %q", res.MIME(), tt.wantMIME)
			}
		})
	}
}

func TestIdentifyEveryBuiltinRecord(t *testing.T) {
	m := NewMatcher(nil)

	// Records whose bytes are already claimed by an earlier record.
	shadowedBy := map[string]string{
		"ZIP_7z":       "BMP",
		"TXT_UTF32_LE": "TXT_UTF16_LE",
	}

	for _, rec := range Builtin().Records() {
		rec := rec
		t.Run(rec.Name, func(t *testing.T) {
			res := m.Scan(header(rec.Offset, render(rec.Pattern, 0xAA)))
			want := rec.Name
			if winner, ok := shadowedBy[rec.Name]; ok {
				want = winner
			}
			if res.Kind != Identified || res.Record.Name != want {
				t.Errorf("Scan() = %v %s, want %s", res.Kind, res.Record.Name, want)
			}
		})
	}
}

func TestLiteralByteFlipChangesResult(t *testing.T) {
	m := NewMatcher(nil)

	for _, rec := range Builtin().Records() {
		rec := rec
		if rec.Name == "ZIP_7z" || rec.Name == "TXT_UTF32_LE" {
			continue
		}
		t.Run(rec.Name, func(t *testing.T) {
			base := header(rec.Offset, render(rec.Pattern, 0xAA))
			for i, b := range rec.Pattern {
				h := append([]byte(nil), base...)
				h[rec.Offset+i] ^= 0xFF

				res := m.Scan(h)
				if b.IsWildcard() {
					if res.Record.Name != rec.Name {
						t.Errorf("wildcard position %d changed result to %s", i, res.Record.Name)
					}
					continue
				}
				if res.Kind == Identified && res.Record.Name == rec.Name {
					t.Errorf("flipping literal position %d still matched %s", i, rec.Name)
				}
			}
		})
	}
}

func TestFlipFallsToNextMatch(t *testing.T) {
	// Both records match "AB"; breaking the first one's third byte leaves the second.
	first := Record{Name: "FIRST", Pattern: Bytes('A', 'B', 0x00, 'C'), MIME: "x/first"}
	second := Record{Name: "SECOND", Pattern: Bytes('A', 'B'), MIME: "x/second"}
	c, err := NewCatalog(first, second)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	m := NewMatcher(c)

	h := []byte{'A', 'B', 0x00, 'C'}
	if res := m.Scan(h); res.Record.Name != "FIRST" {
		t.Fatalf("Scan() = %s, want FIRST", res.Record.Name)
	}
	h[3] = 'D'
	if res := m.Scan(h); res.Record.Name != "SECOND" {
		t.Errorf("Scan() after flip = %s, want SECOND", res.Record.Name)
	}
	h[1] = 'X'
	if res := m.Scan(h); res.Kind != NoMatch {
		t.Errorf("Scan() after second flip = %v, want NoMatch", res.Kind)
	}
}

func TestCatalogOrderIsPriority(t *testing.T) {
	a := Record{Name: "A", Pattern: Bytes(0x10, 0x00), MIME: "x/a"}
	b := Record{Name: "B", Pattern: Pat(0x10, Wild), MIME: "x/b"}
	h := []byte{0x10, 0x00, 0x00}

	ab, _ := NewCatalog(a, b)
	ba, _ := NewCatalog(b, a)

	for i := 0; i < 3; i++ {
		if res := NewMatcher(ab).Scan(h); res.Record.Name != "A" {
			t.Errorf("run %d: [A B] picked %s", i, res.Record.Name)
		}
		if res := NewMatcher(ba).Scan(h); res.Record.Name != "B" {
			t.Errorf("run %d: [B A] picked %s", i, res.Record.Name)
		}
	}

	// BMP and the two-byte 7z record share "BM"; BMP is listed first.
	if res := NewMatcher(nil).Scan(header(0, []byte("BM"))); res.Record.Name != "BMP" {
		t.Errorf("Scan(BM) = %s, want BMP", res.Record.Name)
	}
}

func TestUnicodeText(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		name     string
		header   []byte
		wantKind Kind
		wantName string
	}{
		{name: "UTF-8 BOM without zero", header: []byte("\xEF\xBB\xBFhello"), wantKind: PlainText, wantName: "TXT"},
		{name: "UTF-8 BOM with zero", header: []byte("\xEF\xBB\xBFhi\x00"), wantKind: Identified, wantName: "TXT_UTF8"},
		{name: "UTF-16LE BOM", header: []byte("\xFF\xFEh\x00i\x00"), wantKind: Identified, wantName: "TXT_UTF16_LE"},
		{name: "UTF-16BE BOM", header: []byte("\xFE\xFF\x00h\x00i"), wantKind: Identified, wantName: "TXT_UTF16_BE"},
		{name: "UTF-32BE BOM", header: []byte("\x00\x00\xFE\xFF\x00\x00\x00h"), wantKind: Identified, wantName: "TXT_UTF32_BE"},
		// UTF-32LE starts with the UTF-16LE BOM, which is listed first.
		{name: "UTF-32LE BOM", header: []byte("\xFF\xFE\x00\x00h\x00\x00\x00"), wantKind: Identified, wantName: "TXT_UTF16_LE"},
		// Without a BOM, UTF-16 text is not recognised as text.
		{name: "UTF-16LE without BOM", header: []byte("h\x00i\x00"), wantKind: NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Identify(tt.header, nil)
			if err != nil {
				t.Fatalf("Identify() error = %v", err)
			}
			if res.Kind != tt.wantKind || res.Record.Name != tt.wantName {
				t.Errorf("Identify() = %v %q, want %v %q", res.Kind, res.Record.Name, tt.wantKind, tt.wantName)
			}
			if res.Kind != NoMatch && res.MIME() != "text/plain" {
				t.Errorf("MIME() = %q, want text/plain", res.MIME())
			}
		})
	}
}

func TestIdentifyIsIdempotent(t *testing.T) {
	m := NewMatcher(nil)
	zipHeader := header(0, []byte{0x50, 0x4B, 0x03, 0x04})
	opener := fakeOpener(&fakeContainer{
		entries: []string{"mimetype", "content.xml"},
		content: map[string][]byte{"mimetype": []byte(ODS.MIME)},
	})

	for _, h := range [][]byte{zipHeader, header(0, []byte("GIF89a")), []byte("text")} {
		first, err1 := m.Identify(h, opener)
		second, err2 := m.Identify(h, opener)
		if err1 != nil || err2 != nil {
			t.Fatalf("Identify() errors = %v, %v", err1, err2)
		}
		if first.Kind != second.Kind || !first.Record.Equal(second.Record) {
			t.Errorf("Identify() = %v then %v", first.Record.Name, second.Record.Name)
		}
	}
}

func TestKindString(t *testing.T) {
	if NoMatch.String() != "no match" || PlainText.String() != "plain text" || Identified.String() != "identified" {
		t.Errorf("unexpected Kind names: %s, %s, %s", NoMatch, PlainText, Identified)
	}
}
