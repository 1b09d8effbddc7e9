package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobeaver/filesig/signature"
)

type zipEntry struct {
	name    string
	content string
}

// buildZip writes entries in order, storing them uncompressed
func buildZip(t testing.TB, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Store})
		if err != nil {
			t.Fatalf("CreateHeader(%s) error = %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.content)); err != nil {
			t.Fatalf("Write(%s) error = %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestZipContainer(t *testing.T) {
	data := buildZip(t,
		zipEntry{"mimetype", "application/vnd.oasis.opendocument.text"},
		zipEntry{"content.xml", "<office:document-content/>"},
		zipEntry{"META-INF/manifest.xml", "<manifest/>"},
	)

	c, err := NewZipContainer(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewZipContainer() error = %v", err)
	}
	defer c.Close()

	names, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	want := []string{"mimetype", "content.xml", "META-INF/manifest.xml"}
	if len(names) != len(want) {
		t.Fatalf("Entries() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	content, err := c.ReadEntry("mimetype")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if string(content) != "application/vnd.oasis.opendocument.text" {
		t.Errorf("ReadEntry() = %q", content)
	}

	if _, err := c.ReadEntry("missing.xml"); !errors.Is(err, signature.ErrEntryNotFound) {
		t.Errorf("ReadEntry(missing) error = %v, want ErrEntryNotFound", err)
	}
}

func TestZipContainerCorruptEntry(t *testing.T) {
	const payload = "application/vnd.oasis.opendocument.spreadsheet"
	data := buildZip(t, zipEntry{"mimetype", payload})

	i := bytes.Index(data, []byte(payload))
	if i < 0 {
		t.Fatal("payload not found in stored archive")
	}
	data[i] ^= 0xFF

	c, err := NewZipContainer(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewZipContainer() error = %v", err)
	}
	if _, err := c.ReadEntry("mimetype"); !errors.Is(err, signature.ErrDecode) {
		t.Errorf("ReadEntry() error = %v, want ErrDecode", err)
	}
}

func TestNewZipContainerInvalid(t *testing.T) {
	data := []byte("PK\x03\x04 truncated")
	if _, err := NewZipContainer(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("NewZipContainer() error = nil, want error for truncated archive")
	}
}

func TestIdentifyWithZipOpener(t *testing.T) {
	tests := []struct {
		name    string
		entries []zipEntry
		wantExt string
	}{
		{
			name: "docx",
			entries: []zipEntry{
				{"[Content_Types].xml", "<Types/>"},
				{"word/document.xml", "<w:document/>"},
			},
			wantExt: "docx",
		},
		{
			name: "xlsx",
			entries: []zipEntry{
				{"[Content_Types].xml", "<Types/>"},
				{"xl/workbook.xml", "<workbook/>"},
			},
			wantExt: "xlsx",
		},
		{
			name: "odt",
			entries: []zipEntry{
				{"mimetype", "application/vnd.oasis.opendocument.text"},
				{"content.xml", "<doc/>"},
			},
			wantExt: "odt",
		},
		{
			name: "ods",
			entries: []zipEntry{
				{"mimetype", "application/vnd.oasis.opendocument.spreadsheet"},
				{"content.xml", "<doc/>"},
			},
			wantExt: "ods",
		},
		{
			name: "epub stays zip",
			entries: []zipEntry{
				{"mimetype", "application/epub+zip"},
				{"OEBPS/content.opf", "<package/>"},
			},
			wantExt: "zip",
		},
		{
			name:    "plain archive",
			entries: []zipEntry{{"readme.txt", "hello"}},
			wantExt: "zip",
		},
	}

	m := signature.NewMatcher(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t, tt.entries...)
			res, err := m.Identify(HeaderFromBytes(data), ZipOpener(bytes.NewReader(data), int64(len(data))))
			if err != nil {
				t.Fatalf("Identify() error = %v", err)
			}
			if res.Extension() != tt.wantExt {
				t.Errorf("Identify() extension = %q, want %q", res.Extension(), tt.wantExt)
			}
		})
	}
}

func TestFileZipOpener(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.bin")
	data := buildZip(t, zipEntry{"word/document.xml", "<w:document/>"})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	header, err := ReadFileHeader(path)
	if err != nil {
		t.Fatalf("ReadFileHeader() error = %v", err)
	}
	res, err := signature.NewMatcher(nil).Identify(header, FileZipOpener(path))
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if res.Record.Name != "WORDX" {
		t.Errorf("Identify() = %s, want WORDX", res.Record.Name)
	}

	_, err = signature.NewMatcher(nil).Identify(header, FileZipOpener(filepath.Join(dir, "missing.zip")))
	if !signature.IsUnreadableContainer(err) {
		t.Errorf("Identify(missing) error = %v, want ErrUnreadableContainer", err)
	}
}
