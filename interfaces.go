package nsfs

import "iter"

// Namespace defines the path-based operations external consumers need.
// Implementations must leave the tree untouched when an operation fails.
type Namespace interface {
	// CreateDirectory creates a directory at an absolute path whose parent already exists
	CreateDirectory(path string) error
	// CreateFile creates a file at an absolute path with at least one parent segment
	CreateFile(path string) error
	// Resolve maps an absolute path to a snapshot of its node
	Resolve(path string) (NodeView, error)
	// ListChildren returns the ordered immediate children of a directory.
	// The sequence is recomputed from current state every time it is ranged over.
	ListChildren(path string) (iter.Seq[Entry], error)
}

// Lookuper is implemented by namespaces that index nodes by ID
type Lookuper interface {
	Lookup(id uint64) (NodeView, bool)
}
