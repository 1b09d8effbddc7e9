package filesig

import (
	"errors"
	"fmt"

	"github.com/gobeaver/filesig/source"
)

// Common detection errors
var (
	ErrNotExist  = source.ErrNotExist
	ErrTooLarge  = source.ErrTooLarge
	ErrNoCatalog = errors.New("no catalog file configured")
	ErrClosed    = errors.New("detector closed")
	ErrIsDir     = errors.New("is a directory")
)

// PathError records an error and the operation and path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a file or object
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsTooLarge reports whether an error indicates that a stream was too large
// to inspect as a container
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}
