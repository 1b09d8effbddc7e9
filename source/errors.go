package source

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExist is returned when a file or object is missing
	ErrNotExist = errors.New("source does not exist")

	// ErrTooLarge is returned when a stream must be buffered for container
	// inspection but exceeds the configured limit
	ErrTooLarge = errors.New("source exceeds container size limit")
)

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
