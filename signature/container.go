package signature

import (
	"fmt"
	"strings"
)

// Container gives read access to the entries of an archive
type Container interface {
	// Entries lists entry names in archive order.
	Entries() ([]string, error)

	// ReadEntry returns the full content of the named entry.
	// Implementations report a missing entry with ErrEntryNotFound.
	ReadEntry(name string) ([]byte, error)

	// Close releases the archive.
	Close() error
}

// ContainerOpener opens the archive whose header matched the ZIP signature
type ContainerOpener func() (Container, error)

// odfMimeEntry is the OpenDocument entry holding the document MIME type
const odfMimeEntry = "mimetype"

// Disambiguate resolves a plain ZIP candidate to docx, xlsx, odt or ods by
// looking inside the archive. First hit wins:
//
//  1. an entry under word/ gives WordX
//  2. an entry under xl/ gives ExcelX
//  3. a "mimetype" entry equal to the ODT or ODS MIME gives ODT or ODS
//  4. anything else stays plain ZIP
//
// The container is closed before returning. Failure to open or list the
// archive is reported as ErrUnreadableContainer; failure to read "mimetype"
// is reported as is. In both cases the candidate is returned.
func Disambiguate(candidate Record, open ContainerOpener) (Result, error) {
	res := identified(candidate)
	if open == nil {
		return res, nil
	}

	c, openErr := open()
	if openErr != nil {
		return res, &ContainerError{Op: "open", Err: fmt.Errorf("%w: %w", ErrUnreadableContainer, openErr)}
	}
	if c == nil {
		return res, &ContainerError{Op: "open", Err: ErrUnreadableContainer}
	}
	defer func() {
		// a close failure is not worth an error once the entries were read
		_ = c.Close()
	}()

	names, listErr := c.Entries()
	if listErr != nil {
		return res, &ContainerError{Op: "entries", Err: fmt.Errorf("%w: %w", ErrUnreadableContainer, listErr)}
	}

	if hasPrefix(names, "word/") {
		return identified(WordX), nil
	}
	if hasPrefix(names, "xl/") {
		return identified(ExcelX), nil
	}
	if !contains(names, odfMimeEntry) {
		return res, nil
	}

	content, readErr := c.ReadEntry(odfMimeEntry)
	if readErr != nil {
		return res, &ContainerError{Op: "read", Entry: odfMimeEntry, Err: readErr}
	}

	switch string(content) {
	case ODT.MIME:
		return identified(ODT), nil
	case ODS.MIME:
		return identified(ODS), nil
	}
	return res, nil
}

func hasPrefix(names []string, prefix string) bool {
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
