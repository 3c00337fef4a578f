// Package printer renders a namespace for humans. It only reads through
// [nsfs.Namespace] and never changes state.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/brettbedarf/nsfs"
)

// Indent is written once per depth level by PrintTree
const Indent = "  "

// Printer writes tree and listing output
type Printer struct {
	out      io.Writer
	dirColor *color.Color
	errColor *color.Color
}

// New creates a Printer writing to w. Directories are highlighted when colorize is set.
func New(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		out:      w,
		dirColor: color.New(color.FgBlue, color.Bold),
		errColor: color.New(color.FgRed),
	}
	if colorize {
		p.dirColor.EnableColor()
		p.errColor.EnableColor()
	} else {
		p.dirColor.DisableColor()
		p.errColor.DisableColor()
	}
	return p
}

// entryName suffixes directories with "/" to distinguish kinds
func (p *Printer) entryName(name string, kind nsfs.NodeKind) string {
	if kind.IsDir() {
		return p.dirColor.Sprint(name + nsfs.Separator)
	}
	return name
}

// PrintTree writes a depth-first, pre-order rendering of the subtree at path,
// indenting each node by its depth.
func (p *Printer) PrintTree(ns nsfs.Namespace, path string) error {
	v, err := ns.Resolve(path)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.out, p.entryName(v.Name, v.Kind)); err != nil {
		return err
	}
	if !v.Kind.IsDir() {
		return nil
	}
	return p.printChildren(ns, path, 1)
}

func (p *Printer) printChildren(ns nsfs.Namespace, dir string, depth int) error {
	seq, err := ns.ListChildren(dir)
	if err != nil {
		return err
	}
	for e := range seq {
		if _, err := fmt.Fprintf(p.out, "%s%s\n", strings.Repeat(Indent, depth), p.entryName(e.Name, e.Kind)); err != nil {
			return err
		}
		if e.Kind.IsDir() {
			if err := p.printChildren(ns, nsfs.JoinPath(dir, e.Name), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListDirectory writes the immediate children of the directory at path
func (p *Printer) ListDirectory(ns nsfs.Namespace, path string) error {
	seq, err := ns.ListChildren(path)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.out, "Contents of '%s':\n", path); err != nil {
		return err
	}
	for e := range seq {
		if _, err := fmt.Fprintln(p.out, p.entryName(e.Name, e.Kind)); err != nil {
			return err
		}
	}
	return nil
}

// Stat writes a one-line summary of the node at path
func (p *Printer) Stat(ns nsfs.Namespace, path string) error {
	v, err := ns.Resolve(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "Found: %s (is directory: %t, children: %d, id: %d)\n",
		v.Name, v.Kind.IsDir(), v.ChildCount, v.ID)
	return err
}

// Error writes err on its own line
func (p *Printer) Error(err error) {
	p.errColor.Fprintf(p.out, "Error: %v\n", err)
}
