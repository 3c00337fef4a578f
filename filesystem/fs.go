package filesystem

import (
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/config"
	"github.com/brettbedarf/nsfs/internal/util"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// RootID is the registry ID of the root node. It matches the FUSE root inode.
const RootID uint64 = 1

// Operation names recorded in returned [nsfs.PathError]s
const (
	OpMkdir   = "mkdir"
	OpCreate  = "create"
	OpResolve = "resolve"
	OpList    = "list"
)

var (
	_ nsfs.Namespace = (*FileSystem)(nil)
	_ nsfs.Lookuper  = (*FileSystem)(nil)
)

// FileSystem is the tree store. It owns the root Node and every Node below it.
//
// All creations are serialized behind a single write lock so sibling name
// uniqueness and directory capacity hold even when the store is shared by the
// FUSE and HTTP front ends; queries hold the read lock.
type FileSystem struct {
	cfg      *config.Config
	id       uuid.UUID                 // Session ID for logs
	mu       sync.RWMutex              // Protects every field below and all Nodes
	root     *Node                     // Root of node tree; nil once torn down
	lastID   uint64                    // Last registry ID assigned
	registry *xsync.Map[uint64, *Node] // maps registry IDs to Nodes; backs parent references
}

// NewFS initializes an empty store holding only the root directory.
// A nil cfg uses [config.NewDefaultConfig].
func NewFS(cfg *config.Config) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := util.GetLogger("FS.NewFS")

	root := &Node{id: RootID, name: cfg.RootName, kind: nsfs.DirKind, createdAt: time.Now()}
	fs := &FileSystem{
		cfg:      cfg,
		id:       uuid.New(),
		root:     root,
		lastID:   RootID,
		registry: xsync.NewMap[uint64, *Node](),
	}
	fs.registry.Store(RootID, root)

	logger.Info().
		Str("session", fs.id.String()).
		Int("capacity", cfg.Capacity).
		Int("maxNameLength", cfg.MaxNameLength).
		Msg("Filesystem initialized")
	return fs
}

// ID returns the session ID of this store
func (fs *FileSystem) ID() uuid.UUID {
	return fs.id
}

// Config returns the configuration the store was created with
func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

// NodeCount returns the number of live nodes including the root; 0 once torn down
func (fs *FileSystem) NodeCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if fs.registry == nil {
		return 0
	}
	return fs.registry.Size()
}

// Resolve maps an absolute path to a snapshot of its node.
// Fails with ErrPathNotFound if any component is missing or a file appears
// before the path is exhausted; never partially succeeds.
func (fs *FileSystem) Resolve(p string) (nsfs.NodeView, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if fs.root == nil {
		return nsfs.NodeView{}, nsfs.NewPathError(OpResolve, p, nsfs.ErrNotInitialized, "")
	}
	comps, err := splitPath(p)
	if err != nil {
		return nsfs.NodeView{}, pathErr(OpResolve, p, err)
	}
	n, err := fs.walkLocked(comps)
	if err != nil {
		return nsfs.NodeView{}, pathErr(OpResolve, p, err)
	}
	return fs.viewLocked(n), nil
}

// Lookup returns the snapshot of the node registered under id
func (fs *FileSystem) Lookup(id uint64) (nsfs.NodeView, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if fs.root == nil {
		return nsfs.NodeView{}, false
	}
	n, ok := fs.registry.Load(id)
	if !ok {
		return nsfs.NodeView{}, false
	}
	return fs.viewLocked(n), true
}

// CreateDirectory creates a new directory at p. Intermediate directories are
// never created: the parent path must already resolve to a directory.
func (fs *FileSystem) CreateDirectory(p string) error {
	return fs.create(OpMkdir, p, nsfs.DirKind)
}

// CreateFile creates a new empty file at p. Unlike directories, files may not
// be created directly under the root: p needs at least one parent segment.
func (fs *FileSystem) CreateFile(p string) error {
	return fs.create(OpCreate, p, nsfs.FileKind)
}

// create either fully succeeds or leaves the tree untouched
func (fs *FileSystem) create(op, p string, kind nsfs.NodeKind) error {
	logger := util.GetLogger("FS.create")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	err := fs.createLocked(p, kind)
	if err != nil {
		pe := pathErr(op, p, err)
		logger.Debug().Err(pe).Str("op", op).Str("path", p).Msg("Failed to create node")
		return pe
	}
	logger.Debug().Str("op", op).Str("path", p).Uint64("id", fs.lastID).Msg("Added new node")
	return nil
}

func (fs *FileSystem) createLocked(p string, kind nsfs.NodeKind) error {
	if fs.root == nil {
		return nsfs.ErrNotInitialized
	}
	comps, err := splitPath(p)
	if err != nil {
		return err
	}
	if len(comps) == 0 {
		return newKindError(nsfs.ErrInvalidPath, "cannot create the root")
	}
	if kind == nsfs.FileKind && len(comps) < 2 {
		return newKindError(nsfs.ErrInvalidPath, "must specify a parent directory")
	}

	parent, err := fs.walkLocked(comps[:len(comps)-1])
	if err != nil {
		return newKindError(nsfs.ErrPathNotFound, "parent not found")
	}
	if !parent.IsDir() {
		return newKindError(nsfs.ErrNotADirectory, "parent is not a directory")
	}

	name := fs.componentName(comps[len(comps)-1])
	if name != comps[len(comps)-1] {
		logger := util.GetLogger("FS.create")
		logger.Warn().Str("path", p).Str("name", name).Int("maxNameLength", fs.cfg.MaxNameLength).
			Msg("Truncated over-long name")
	}

	node, err := NewNode(fs.lastID+1, name, kind, fs.cfg.MaxNameLength)
	if err != nil {
		return err
	}
	if err := parent.AddChild(node, fs.cfg.Capacity); err != nil {
		return err
	}
	fs.lastID = node.id
	fs.registry.Store(node.id, node)
	return nil
}

// ListChildren returns the ordered (name, kind) pairs of the directory at p.
// The returned sequence re-reads the directory every time it is ranged over and
// never holds the store lock while yielding.
func (fs *FileSystem) ListChildren(p string) (iter.Seq[nsfs.Entry], error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if fs.root == nil {
		return nil, nsfs.NewPathError(OpList, p, nsfs.ErrNotInitialized, "")
	}
	comps, err := splitPath(p)
	if err != nil {
		return nil, pathErr(OpList, p, err)
	}
	n, err := fs.walkLocked(comps)
	if err != nil {
		return nil, pathErr(OpList, p, err)
	}
	if !n.IsDir() {
		return nil, nsfs.NewPathError(OpList, p, nsfs.ErrNotADirectory, "")
	}

	id := n.id
	return func(yield func(nsfs.Entry) bool) {
		for _, e := range fs.entries(id) {
			if !yield(e) {
				return
			}
		}
	}, nil
}

// entries snapshots the children of the node registered under id
func (fs *FileSystem) entries(id uint64) []nsfs.Entry {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if fs.root == nil {
		return nil
	}
	n, ok := fs.registry.Load(id)
	if !ok {
		return nil
	}
	return n.Entries()
}

// Teardown releases the whole tree. Every later call fails with
// ErrNotInitialized. Calling it more than once is a no-op.
func (fs *FileSystem) Teardown() {
	logger := util.GetLogger("FS.Teardown")

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.root == nil {
		return
	}
	released := fs.registry.Size()
	fs.registry.Range(func(id uint64, _ *Node) bool {
		fs.registry.Delete(id)
		return true
	})
	fs.root = nil
	logger.Info().Str("session", fs.id.String()).Int("nodes", released).Msg("Filesystem torn down")
}

// walkLocked descends from the root one component at a time.
// Caller must hold fs.mu
func (fs *FileSystem) walkLocked(comps []string) (*Node, error) {
	cur := fs.root
	for _, c := range comps {
		if !cur.IsDir() {
			return nil, newKindError(nsfs.ErrPathNotFound, cur.name+" is not a directory")
		}
		next, ok := cur.FindChild(fs.componentName(c))
		if !ok {
			return nil, nsfs.ErrPathNotFound
		}
		cur = next
	}
	return cur, nil
}

// componentName applies the configured truncation policy so lookups and
// creations agree on the stored name.
func (fs *FileSystem) componentName(c string) string {
	if !fs.cfg.TruncateNames {
		return c
	}
	return truncateName(c, fs.cfg.MaxNameLength)
}

// pathLocked rebuilds the absolute path of n through parent references.
// Caller must hold fs.mu
func (fs *FileSystem) pathLocked(n *Node) string {
	var names []string
	for cur := n; cur != nil && cur.id != RootID; {
		names = append(names, cur.name)
		parent, ok := fs.registry.Load(cur.parent)
		if !ok {
			break
		}
		cur = parent
	}
	if len(names) == 0 {
		return nsfs.Separator
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(nsfs.Separator)
		b.WriteString(names[i])
	}
	return b.String()
}

// Caller must hold fs.mu
func (fs *FileSystem) viewLocked(n *Node) nsfs.NodeView {
	return nsfs.NodeView{
		ID:         n.id,
		Name:       n.name,
		Kind:       n.kind,
		Path:       fs.pathLocked(n),
		ChildCount: n.ChildCount(),
		CreatedAt:  n.createdAt,
	}
}
