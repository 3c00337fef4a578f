package filesystem

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/brettbedarf/nsfs"
)

// Node is a single directory or file entry. Nodes are not safe for concurrent
// use on their own; the owning [FileSystem] serializes access.
type Node struct {
	id        uint64        // Registry ID; RootID for the root
	name      string        // Name of the node (last part of the path)
	kind      nsfs.NodeKind // Immutable
	parent    uint64        // Registry ID of the parent; 0 for the root or a detached node
	children  []*Node       // Owned exclusively by this node; insertion order is listing order
	createdAt time.Time
}

// NewNode creates a detached Node with no children.
//
// NOTE: Parent node is responsible for setting the returned Node's parent
// reference when linking it as a child via [Node.AddChild]
func NewNode(id uint64, name string, kind nsfs.NodeKind, maxNameLen int) (*Node, error) {
	if err := validateName(name, maxNameLen); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
	return &Node{
		id:        id,
		name:      name,
		kind:      kind,
		createdAt: time.Now(),
	}, nil
}

func validateName(name string, maxNameLen int) error {
	switch {
	case name == "":
		return newKindError(nsfs.ErrInvalidPath, "empty name")
	case strings.Contains(name, nsfs.Separator):
		return newKindError(nsfs.ErrInvalidPath, "name must not contain "+nsfs.Separator)
	case name == "." || name == "..":
		return newKindError(nsfs.ErrInvalidPath, "reserved name "+name)
	case maxNameLen > 0 && len(name) > maxNameLen:
		return newKindError(nsfs.ErrInvalidPath, fmt.Sprintf("name exceeds %d bytes", maxNameLen))
	}
	return nil
}

// truncateName cuts name to at most maxLen bytes without splitting a rune
func truncateName(name string, maxLen int) string {
	if maxLen <= 0 || len(name) <= maxLen {
		return name
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

func (n *Node) ID() uint64 {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Kind() nsfs.NodeKind {
	return n.kind
}

func (n *Node) IsDir() bool {
	return n.kind.IsDir()
}

// Parent returns the registry ID of the parent; 0 if root or detached
func (n *Node) Parent() uint64 {
	return n.parent
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// AddChild attaches child to n and sets the child's parent reference.
// capacity <= 0 means unbounded.
// Fails without mutating anything if n is a file, a sibling already uses the
// child's name, or n already holds capacity children.
func (n *Node) AddChild(child *Node, capacity int) error {
	if !n.IsDir() {
		return newKindError(nsfs.ErrNotADirectory, "parent is not a directory")
	}
	if _, ok := n.FindChild(child.name); ok {
		return newKindError(nsfs.ErrAlreadyExists, fmt.Sprintf("%q already exists in %q", child.name, n.name))
	}
	if capacity > 0 && len(n.children) >= capacity {
		return newKindError(nsfs.ErrCapacityExceeded, fmt.Sprintf("%q already holds %d entries", n.name, capacity))
	}
	child.parent = n.id
	n.children = append(n.children, child)
	return nil
}

// FindChild returns the child with a matching name by linear scan.
// Sibling counts are small so no index is kept.
func (n *Node) FindChild(name string) (child *Node, ok bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Children returns the children in insertion order in a new slice
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Entries returns the (name, kind) pairs of the children in insertion order
func (n *Node) Entries() []nsfs.Entry {
	entries := make([]nsfs.Entry, 0, len(n.children))
	for _, c := range n.children {
		entries = append(entries, nsfs.Entry{Name: c.name, Kind: c.kind})
	}
	return entries
}
