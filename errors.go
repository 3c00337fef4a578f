package nsfs

import "errors"

// Error kinds. Every failed operation wraps exactly one of these in a [PathError].
var (
	ErrNotInitialized   = errors.New("filesystem not initialized")
	ErrPathNotFound     = errors.New("path not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotADirectory    = errors.New("not a directory")
	ErrInvalidPath      = errors.New("invalid path")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrAllocationFailure is part of the taxonomy but never returned: the Go
	// runtime aborts the process when memory is exhausted.
	ErrAllocationFailure = errors.New("allocation failure")
)

// PathError records a failed namespace operation and the path that caused it.
type PathError struct {
	Op     string // i.e. "mkdir", "create", "resolve", "list"
	Path   string
	Reason string // Optional detail, i.e. "must specify a parent directory"
	Err    error  // One of the Err* kinds above
}

func (e *PathError) Error() string {
	msg := e.Op + " " + e.Path + ": " + e.Err.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError is a convenience constructor for [PathError]
func NewPathError(op, path string, kind error, reason string) *PathError {
	return &PathError{Op: op, Path: path, Reason: reason, Err: kind}
}
