package source

import (
	"errors"
	"io"
	"os"

	"github.com/gobeaver/filesig/signature"
)

// ReadHeader reads up to signature.MaxHeaderSize leading bytes from r.
// A reader that is also an io.Seeker is rewound to its start first, so the
// header is always the beginning of the content. The returned slice holds
// only the bytes actually read; a short stream gives a short header.
func ReadHeader(r io.Reader) ([]byte, error) {
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	buf := make([]byte, signature.MaxHeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// HeaderFromBytes returns the leading signature.MaxHeaderSize bytes of data.
// The result shares memory with data.
func HeaderFromBytes(data []byte) []byte {
	if len(data) > signature.MaxHeaderSize {
		return data[:signature.MaxHeaderSize]
	}
	return data
}

// ReadFileHeader reads the header of the file at path
func ReadFileHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadHeader(f)
}
