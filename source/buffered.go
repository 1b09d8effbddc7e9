package source

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/gobeaver/filesig/signature"
)

// StreamOpener returns a container opener for content whose header was
// already taken from r with ReadHeader. Readers that support both io.ReaderAt
// and io.Seeker are inspected in place and left positioned at the start;
// anything else goes through BufferedOpener.
func StreamOpener(r io.Reader, header []byte, maxSize int64) signature.ContainerOpener {
	if ra, ok := r.(io.ReaderAt); ok {
		if s, ok := r.(io.Seeker); ok {
			if size, err := s.Seek(0, io.SeekEnd); err == nil {
				if _, err := s.Seek(0, io.SeekStart); err == nil {
					return ZipOpener(ra, size)
				}
			}
		}
	}
	return BufferedOpener(r, header, maxSize)
}

// BufferedOpener returns an opener for a non-seekable stream. On first use
// the header and the remainder of rest are buffered in memory, up to maxSize
// bytes in total; larger streams fail with ErrTooLarge. A maxSize of zero or
// less disables the limit. The stream is drained at most once, so the
// opener may be called repeatedly.
func BufferedOpener(rest io.Reader, header []byte, maxSize int64) signature.ContainerOpener {
	b := &bufferedStream{header: header, rest: rest, maxSize: maxSize}
	return func() (signature.Container, error) {
		b.once.Do(b.load)
		if b.err != nil {
			return nil, b.err
		}
		c, err := NewZipContainer(bytes.NewReader(b.data), int64(len(b.data)))
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

type bufferedStream struct {
	once    sync.Once
	header  []byte
	rest    io.Reader
	maxSize int64
	data    []byte
	err     error
}

func (b *bufferedStream) load() {
	if b.maxSize > 0 && int64(len(b.header)) > b.maxSize {
		b.err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, b.maxSize)
		return
	}

	var buf bytes.Buffer
	buf.Write(b.header)

	src := b.rest
	limit := b.maxSize - int64(len(b.header))
	if b.maxSize > 0 {
		src = io.LimitReader(b.rest, limit+1)
	}

	n, err := io.Copy(&buf, src)
	if err != nil {
		b.err = err
		return
	}
	if b.maxSize > 0 && n > limit {
		b.err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, b.maxSize)
		return
	}
	b.data = buf.Bytes()
}
