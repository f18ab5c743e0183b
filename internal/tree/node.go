package tree

import (
	"os"

	"github.com/marcus/arbor/internal/gitignore"
)

// NodeID is a stable index into a Tree's arena. Parent and child links are
// plain ids, never pointers, so the structure is cycle-free by construction.
type NodeID int

// InvalidID marks the absence of a node (no selection, no parent above root).
const InvalidID NodeID = -1

// Kind classifies a directory entry.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindUnknown
)

// Node is one filesystem entry in the arena. Size and Perm stay nil until
// the background computer fills them in; the UI renders partial data.
type Node struct {
	Path     string
	Name     string
	Kind     Kind
	Depth    int
	Parent   NodeID
	Children []NodeID // nil until listed; listing is cached per node
	Ignored  bool     // per the ignore filter chain, independent of flags
	HasError bool     // listing failed; rendered as a childless leaf

	Size *int64
	Perm *os.FileMode

	listed bool
	filter *gitignore.Filter // dirs only: the chain applicable to children
}

// IsDir reports whether the node can have children.
func (n *Node) IsDir() bool { return n.Kind == KindDir }
