package signature

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadableContainer means the ZIP signature matched but the archive
	// could not be opened or its entries could not be listed
	ErrUnreadableContainer = errors.New("unreadable container")

	// ErrEntryNotFound is reported by containers for a missing entry
	ErrEntryNotFound = errors.New("container entry not found")

	// ErrDecode is reported by containers when an entry cannot be decoded
	ErrDecode = errors.New("container entry decode failed")

	// ErrInvalidRecord is returned when a catalog is built from a malformed record
	ErrInvalidRecord = errors.New("invalid signature record")
)

// ContainerError records a failed container operation during disambiguation.
// The result returned alongside it is always the plain ZIP record.
type ContainerError struct {
	Op    string // "open", "entries" or "read"
	Entry string // entry name for "read"
	Err   error
}

// Error implements the error interface
func (e *ContainerError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("container %s %s: %v", e.Op, e.Entry, e.Err)
	}
	return fmt.Sprintf("container %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *ContainerError) Unwrap() error {
	return e.Err
}

// RecordError identifies the offending record when a catalog cannot be built
type RecordError struct {
	Index  int
	Name   string
	Reason string
}

// Error implements the error interface
func (e *RecordError) Error() string {
	return fmt.Sprintf("%v: record %d (%s): %s", ErrInvalidRecord, e.Index, e.Name, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRecord
func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

// IsUnreadableContainer reports whether err means the container could not be read at all
func IsUnreadableContainer(err error) bool {
	return errors.Is(err, ErrUnreadableContainer)
}
