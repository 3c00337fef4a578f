package filesystem

import (
	"strings"

	"github.com/brettbedarf/nsfs"
)

// splitPath validates an absolute path and returns its components.
// The root path "/" has no components.
//
// Malformed paths are rejected rather than normalized: empty components
// (consecutive or trailing slashes) and "." / ".." segments are invalid.
func splitPath(p string) ([]string, error) {
	if p == "" {
		return nil, newKindError(nsfs.ErrInvalidPath, "empty path")
	}
	if !strings.HasPrefix(p, nsfs.Separator) {
		return nil, newKindError(nsfs.ErrInvalidPath, "path must be absolute")
	}
	if p == nsfs.Separator {
		return nil, nil
	}

	comps := strings.Split(p[1:], nsfs.Separator)
	for _, c := range comps {
		switch c {
		case "":
			return nil, newKindError(nsfs.ErrInvalidPath, "empty path component")
		case ".", "..":
			return nil, newKindError(nsfs.ErrInvalidPath, "relative path components are not supported")
		}
	}
	return comps, nil
}
