// Package fusefs exposes a [nsfs.Namespace] as a FUSE filesystem.
// Directories and empty files can be listed, stat'ed and created;
// nothing can be removed, renamed or written to.
package fusefs

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/nsfs"
	"github.com/brettbedarf/nsfs/internal/util"
)

// Permission bits reported for every node
const (
	DirPerms  = 0o755
	FilePerms = 0o644
)

// Node bridges one namespace path to the go-fuse inode tree. Nodes hold only
// the path; all state lives in the namespace.
type Node struct {
	fs.Inode
	ns   nsfs.Namespace
	path string
}

var (
	_ = (fs.NodeGetattrer)((*Node)(nil))
	_ = (fs.NodeLookuper)((*Node)(nil))
	_ = (fs.NodeReaddirer)((*Node)(nil))
	_ = (fs.NodeMkdirer)((*Node)(nil))
	_ = (fs.NodeCreater)((*Node)(nil))
	_ = (fs.NodeOpener)((*Node)(nil))
	_ = (fs.NodeReader)((*Node)(nil))
)

// NewRoot returns the node to mount for the namespace root
func NewRoot(ns nsfs.Namespace) *Node {
	return &Node{ns: ns, path: nsfs.Separator}
}

// Path returns the namespace path this node stands for
func (n *Node) Path() string {
	return n.path
}

func (n *Node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	v, err := n.ns.Resolve(n.path)
	if err != nil {
		return ToErrno(err)
	}
	FillAttr(&out.Attr, v)
	return fs.OK
}

func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return n.childInode(ctx, nsfs.JoinPath(n.path, name), out)
}

func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	seq, err := n.ns.ListChildren(n.path)
	if err != nil {
		return nil, ToErrno(err)
	}
	var entries []fuse.DirEntry
	for e := range seq {
		entries = append(entries, fuse.DirEntry{Name: e.Name, Mode: modeType(e.Kind)})
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	logger := util.GetLogger("Fuse.Mkdir")
	p := nsfs.JoinPath(n.path, name)
	if err := n.ns.CreateDirectory(p); err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("Mkdir rejected")
		return nil, ToErrno(err)
	}
	return n.childInode(ctx, p, out)
}

func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	logger := util.GetLogger("Fuse.Create")
	p := nsfs.JoinPath(n.path, name)
	if err := n.ns.CreateFile(p); err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("Create rejected")
		return nil, nil, 0, ToErrno(err)
	}
	inode, errno := n.childInode(ctx, p, out)
	return inode, nil, fuse.FOPEN_KEEP_CACHE, errno
}

// Open allows read-only access; files never have content
func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	return nil, fuse.FOPEN_KEEP_CACHE, fs.OK
}

func (n *Node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	return fuse.ReadResultData(nil), fs.OK
}

func (n *Node) childInode(ctx context.Context, p string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	v, err := n.ns.Resolve(p)
	if err != nil {
		return nil, ToErrno(err)
	}
	FillAttr(&out.Attr, v)
	child := &Node{ns: n.ns, path: p}
	return n.NewInode(ctx, child, fs.StableAttr{Mode: modeType(v.Kind), Ino: v.ID}), fs.OK
}

func modeType(kind nsfs.NodeKind) uint32 {
	if kind.IsDir() {
		return fuse.S_IFDIR
	}
	return fuse.S_IFREG
}

// FillAttr writes the attributes of v into attr
func FillAttr(attr *fuse.Attr, v nsfs.NodeView) {
	perms := uint32(FilePerms)
	nlink := uint32(1)
	if v.Kind.IsDir() {
		perms = DirPerms
		nlink = 2
	}
	created := v.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	attr.Ino = v.ID
	attr.Mode = modeType(v.Kind) | perms
	attr.Nlink = nlink
	attr.Size = 0
	attr.Blksize = 4096 // preferred size for fs ops
	attr.Owner = fuse.Owner{
		Uid: uint32(os.Getuid()),
		Gid: uint32(os.Getgid()),
	}
	attr.SetTimes(&created, &created, &created)
}

// ToErrno maps namespace error kinds to errno values
func ToErrno(err error) syscall.Errno {
	switch {
	case err == nil:
		return fs.OK
	case errors.Is(err, nsfs.ErrPathNotFound):
		return syscall.ENOENT
	case errors.Is(err, nsfs.ErrAlreadyExists):
		return syscall.EEXIST
	case errors.Is(err, nsfs.ErrNotADirectory):
		return syscall.ENOTDIR
	case errors.Is(err, nsfs.ErrInvalidPath):
		return syscall.EINVAL
	case errors.Is(err, nsfs.ErrCapacityExceeded):
		return syscall.ENOSPC
	default:
		return syscall.EIO
	}
}
