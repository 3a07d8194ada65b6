package tree

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/algebrars/token"
)

// BoundKind is the kind of a domain restriction.
type BoundKind int

const (
	NotEqual BoundKind = iota
)

func (k BoundKind) String() string {
	switch k {
	case NotEqual:
		return "≠"
	}
	return fmt.Sprintf("BoundKind(%d)", int(k))
}

// Bound is a domain restriction learned about a variable.
type Bound struct {
	Kind  BoundKind
	Value *Node
}

func (b Bound) String() string {
	return fmt.Sprintf("%v %v", b.Kind, b.Value)
}

// Bounds maps variable names to their restrictions.
type Bounds map[string][]Bound

// Add records bound for name, unless an equal bound is already
// known.
func (b Bounds) Add(name string, bound Bound) {
	for _, old := range b[name] {
		if old.Kind == bound.Kind && old.Value.Equal(bound.Value) {
			return
		}
	}
	b[name] = append(b[name], bound)
}

// Names returns the bound variable names in sorted order.
func (b Bounds) Names() []string {
	names := maps.Keys(b)
	slices.Sort(names)
	return names
}

// Merge adds every bound of c to b.
func (b Bounds) Merge(c Bounds) {
	for name, bs := range c {
		for _, bound := range bs {
			b.Add(name, bound)
		}
	}
}

func (b Bounds) String() string {
	var parts []string
	for _, name := range b.Names() {
		for _, bound := range b[name] {
			parts = append(parts, fmt.Sprintf("%s %v", name, bound))
		}
	}
	return strings.Join(parts, ", ")
}

// Tree is a top level expression with the bounds accumulated while
// rewriting it.
type Tree struct {
	Root   *Node
	Bounds Bounds
}

// NewTree wraps root with an empty set of bounds.
func NewTree(root *Node) *Tree {
	return &Tree{Root: root, Bounds: make(Bounds)}
}

// AddOp replaces the root with (root op n).
func (t *Tree) AddOp(op token.Op, n *Node) {
	t.Root = Op(op, t.Root, n)
}

// Copy deep copies t.
func (t *Tree) Copy() *Tree {
	c := NewTree(t.Root.Copy())
	c.Bounds.Merge(t.Bounds)
	return c
}

func (t *Tree) String() string {
	return t.Root.String()
}
