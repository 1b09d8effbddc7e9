package filesig

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkDetectBytes(b *testing.B) {
	ctx := context.Background()
	d := NewDetector()

	inputs := map[string][]byte{
		"pdf":     []byte("%PDF-1.7\x00"),
		"text":    bytes.Repeat([]byte("lorem ipsum "), 100),
		"nomatch": bytes.Repeat([]byte{0x01, 0x00}, 300),
		"docx":    buildZip(b, "[Content_Types].xml", "word/document.xml"),
	}

	for name, data := range inputs {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := d.DetectBytes(ctx, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDetectFile(b *testing.B) {
	path := filepath.Join(b.TempDir(), "report.docx")
	if err := os.WriteFile(path, buildZip(b, "word/document.xml"), 0o644); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	detectors := map[string]*Detector{
		"uncached": NewDetector(),
		"cached":   NewDetector(WithCache(NewMemoryCache(), time.Minute)),
	}

	for name, d := range detectors {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := d.DetectFile(ctx, path); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
