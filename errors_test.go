package nsfs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *PathError
		want string
	}{
		{"without_reason", NewPathError("mkdir", "/a", ErrAlreadyExists, ""), "mkdir /a: already exists"},
		{"with_reason", NewPathError("create", "/a.txt", ErrInvalidPath, "must specify a parent directory"),
			"create /a.txt: invalid path: must specify a parent directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPathError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewPathError("resolve", "/x", ErrPathNotFound, ""))

	assert.True(t, errors.Is(err, ErrPathNotFound))
	assert.False(t, errors.Is(err, ErrNotADirectory))

	var pe *PathError
	if assert.True(t, errors.As(err, &pe)) {
		assert.Equal(t, "/x", pe.Path)
		assert.Equal(t, "resolve", pe.Op)
	}
}

func TestNodeKind(t *testing.T) {
	t.Parallel()

	assert.True(t, DirKind.IsDir())
	assert.False(t, FileKind.IsDir())
	assert.True(t, FileKind.Valid())
	assert.False(t, NodeKind("symlink").Valid())
}
