// Package tree materializes filesystem nodes into an arena and derives the
// bounded, ranked view that the UI displays.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marcus/arbor/internal/gitignore"
)

// Tree is the arena of nodes under one root. Listings are lazy and cached;
// changing the root means building a fresh Tree.
type Tree struct {
	nodes  []Node
	root   NodeID
	byPath map[string]NodeID
}

// New creates a tree rooted at the given absolute path. The filter is the
// ignore chain applicable to the root (nil when gitignore is off).
func New(root string, filter *gitignore.Filter) *Tree {
	t := &Tree{byPath: make(map[string]NodeID)}
	t.root = t.add(Node{
		Path:   root,
		Name:   filepath.Base(root),
		Kind:   KindDir,
		Parent: InvalidID,
		filter: filter,
	})
	return t
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.byPath[n.Path] = id
	return id
}

// Root returns the root node's id.
func (t *Tree) Root() NodeID { return t.root }

// At returns the node for id. The pointer stays valid until the next
// ListChildren call grows the arena, so callers must not hold it across
// listings.
func (t *Tree) At(id NodeID) *Node { return &t.nodes[id] }

// Len returns the number of materialized nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Lookup finds a node by absolute path.
func (t *Tree) Lookup(path string) (NodeID, bool) {
	id, ok := t.byPath[path]
	return id, ok
}

// ListChildren reads one directory level from the filesystem and caches it.
// Repeated calls return the cached ids. A listing error marks the node and
// yields zero children: the directory is shown as a leaf, never an error.
// Symlinks are recorded but not followed. Children are ordered directories
// first, then case-insensitive by name.
func (t *Tree) ListChildren(id NodeID) []NodeID {
	n := t.At(id)
	if n.listed || !n.IsDir() {
		return n.Children
	}
	path, filter, depth := n.Path, n.filter, n.Depth
	t.At(id).listed = true

	entries, err := os.ReadDir(path)
	if err != nil {
		t.At(id).HasError = true
		return nil
	}

	children := make([]NodeID, 0, len(entries))
	for _, e := range entries {
		childPath := filepath.Join(path, e.Name())
		kind := kindOf(e)
		child := Node{
			Path:   childPath,
			Name:   e.Name(),
			Kind:   kind,
			Depth:  depth + 1,
			Parent: id,
		}
		child.Ignored = !filter.Accepts(childPath, e.Name(), kind == KindDir)
		if kind == KindDir && !child.Ignored {
			child.filter = filter.Extend(childPath)
		}
		children = append(children, t.add(child))
	}

	sort.SliceStable(children, func(i, j int) bool {
		a, b := t.At(children[i]), t.At(children[j])
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	t.At(id).Children = children
	return children
}

// SetComputed records background-computed values for the node at path.
// Values are written once and kept until the arena is discarded.
func (t *Tree) SetComputed(path string, size int64, perm os.FileMode, ignored bool) bool {
	id, ok := t.byPath[path]
	if !ok {
		return false
	}
	n := t.At(id)
	if n.Size == nil {
		s := size
		n.Size = &s
	}
	if n.Perm == nil {
		p := perm
		n.Perm = &p
	}
	n.Ignored = n.Ignored || ignored
	return true
}

// KnownSizes snapshots every computed size, keyed by path. The background
// computer consumes this to avoid recomputing values that survived a
// restart with the same root.
func (t *Tree) KnownSizes() map[string]int64 {
	known := make(map[string]int64)
	for i := range t.nodes {
		if t.nodes[i].Size != nil {
			known[t.nodes[i].Path] = *t.nodes[i].Size
		}
	}
	return known
}

// InvalidateComputed drops every computed size and permission, used when a
// flag toggle changes which entries are eligible for aggregation.
func (t *Tree) InvalidateComputed() {
	for i := range t.nodes {
		t.nodes[i].Size = nil
		t.nodes[i].Perm = nil
	}
}

func kindOf(e os.DirEntry) Kind {
	switch {
	case e.IsDir():
		return KindDir
	case e.Type()&os.ModeSymlink != 0:
		return KindSymlink
	case e.Type().IsRegular():
		return KindFile
	default:
		return KindUnknown
	}
}
