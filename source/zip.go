package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/gobeaver/filesig/signature"
)

// maxEntrySize bounds how much of a single entry ReadEntry will inflate.
// The only entry read during disambiguation is the short ODF "mimetype".
const maxEntrySize = 1 << 20

// ZipContainer exposes a ZIP archive as a signature.Container
type ZipContainer struct {
	reader *zip.Reader
	closer io.Closer
}

// NewZipContainer reads the central directory of the archive in r
func NewZipContainer(r io.ReaderAt, size int64) (*ZipContainer, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("invalid ZIP structure: %w", err)
	}
	return &ZipContainer{reader: zr}, nil
}

// OpenZipFile opens the archive stored at path
func OpenZipFile(path string) (*ZipContainer, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("invalid ZIP structure: %w", err)
	}
	return &ZipContainer{reader: &rc.Reader, closer: rc}, nil
}

// Entries implements signature.Container
func (z *ZipContainer) Entries() ([]string, error) {
	names := make([]string, 0, len(z.reader.File))
	for _, f := range z.reader.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntry implements signature.Container.
// Inflate failures, checksum mismatches and oversized entries are reported
// as signature.ErrDecode.
func (z *ZipContainer) ReadEntry(name string) ([]byte, error) {
	for _, f := range z.reader.File {
		if f.Name != name {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, wrap(signature.ErrDecode, err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		n, err := io.Copy(&buf, io.LimitReader(rc, maxEntrySize+1))
		if err != nil {
			return nil, wrap(signature.ErrDecode, err)
		}
		if n > maxEntrySize {
			return nil, fmt.Errorf("%w: entry %s larger than %d bytes", signature.ErrDecode, name, maxEntrySize)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s", signature.ErrEntryNotFound, name)
}

// Close implements signature.Container
func (z *ZipContainer) Close() error {
	if z.closer != nil {
		return z.closer.Close()
	}
	return nil
}

// ZipOpener returns an opener over an archive of the given size in r
func ZipOpener(r io.ReaderAt, size int64) signature.ContainerOpener {
	return func() (signature.Container, error) {
		c, err := NewZipContainer(r, size)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// FileZipOpener returns an opener over the archive stored at path
func FileZipOpener(path string) signature.ContainerOpener {
	return func() (signature.Container, error) {
		c, err := OpenZipFile(path)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
