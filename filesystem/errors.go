package filesystem

import (
	"errors"

	"github.com/brettbedarf/nsfs"
)

// kindError pairs an nsfs error kind with a human readable reason. It is
// converted to an [nsfs.PathError] at the FileSystem boundary.
type kindError struct {
	kind   error
	reason string
}

func newKindError(kind error, reason string) *kindError {
	return &kindError{kind: kind, reason: reason}
}

func (e *kindError) Error() string {
	if e.reason == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.reason
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// pathErr wraps err for op on path
func pathErr(op, path string, err error) *nsfs.PathError {
	var pe *nsfs.PathError
	if errors.As(err, &pe) {
		return pe
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return nsfs.NewPathError(op, path, ke.kind, ke.reason)
	}
	return nsfs.NewPathError(op, path, err, "")
}
