package filesig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestDetectTree(t *testing.T) {
	root := writeTree(t, map[string][]byte{
		"a.pdf":              []byte("%PDF\x00"),
		"notes.txt":          []byte("plain words"),
		"docs/sheet.bin":     buildZip(t, "xl/workbook.xml"),
		"docs/deep/doc.bin":  buildZip(t, "word/document.xml"),
		"docs/deep/blob.raw": {0x01, 0x00, 0x02},
	})
	d := NewDetector()
	ctx := context.Background()

	tests := []struct {
		name     string
		selector FileSelector
		want     map[string]string
	}{
		{
			name:     "everything",
			selector: nil,
			want: map[string]string{
				"a.pdf":              "pdf",
				"notes.txt":          "txt",
				"docs/sheet.bin":     "xlsx",
				"docs/deep/doc.bin":  "docx",
				"docs/deep/blob.raw": "",
			},
		},
		{
			name:     "glob",
			selector: Glob("*.bin"),
			want: map[string]string{
				"docs/sheet.bin":    "xlsx",
				"docs/deep/doc.bin": "docx",
			},
		},
		{
			name:     "depth",
			selector: Depth(2),
			want: map[string]string{
				"a.pdf":          "pdf",
				"notes.txt":      "txt",
				"docs/sheet.bin": "xlsx",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detections, err := d.DetectTree(ctx, root, tt.selector)
			if err != nil {
				t.Fatalf("DetectTree() error = %v", err)
			}
			got := make(map[string]string)
			for _, det := range detections {
				if det.Err != nil {
					t.Errorf("%s: error = %v", det.Path, det.Err)
				}
				rel, _ := filepath.Rel(root, det.Path)
				got[filepath.ToSlash(rel)] = det.Result.Extension()
			}
			if len(got) != len(tt.want) {
				t.Errorf("DetectTree() = %v, want %v", got, tt.want)
			}
			for path, ext := range tt.want {
				if g, ok := got[path]; !ok || g != ext {
					t.Errorf("%s = %q (found %v), want %q", path, g, ok, ext)
				}
			}
		})
	}
}

func TestDetectTreeErrors(t *testing.T) {
	d := NewDetector()

	_, err := d.DetectTree(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	if !IsNotExist(err) {
		t.Errorf("DetectTree(missing) error = %v, want ErrNotExist", err)
	}

	root := writeTree(t, map[string][]byte{"a.pdf": []byte("%PDF\x00")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	detections, err := d.DetectTree(ctx, root, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("DetectTree(cancelled) error = %v, want context.Canceled", err)
	}
	if len(detections) != 0 {
		t.Errorf("DetectTree(cancelled) = %d detections, want 0", len(detections))
	}
}
