package nsfs

import "time"

// NodeKind valid kinds are DirKind "dir", FileKind "file"
type NodeKind string

const (
	DirKind  NodeKind = "dir"
	FileKind NodeKind = "file"
)

// IsDir reports whether k is DirKind
func (k NodeKind) IsDir() bool {
	return k == DirKind
}

// Valid reports whether k is one of the known kinds
func (k NodeKind) Valid() bool {
	return k == DirKind || k == FileKind
}

// NodeView is a read-only snapshot of a single node handed to external consumers.
// It never aliases the live tree.
type NodeView struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Kind       NodeKind  `json:"kind"`
	Path       string    `json:"path"`
	ChildCount int       `json:"child_count"` // Always 0 for files
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is one (name, kind) pair produced when listing a directory
type Entry struct {
	Name string   `json:"name"`
	Kind NodeKind `json:"kind"`
}
