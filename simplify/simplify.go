// Package simplify rewrites expression trees into a simplified
// canonical form. Each pass walks the tree bottom up; passes repeat
// until one changes nothing.
package simplify

import (
	"errors"
	"fmt"

	"zappem.net/pub/math/algebrars/arith"
	"zappem.net/pub/math/algebrars/factor"
	"zappem.net/pub/math/algebrars/steps"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// DefaultMaxPasses bounds the number of passes made by Simplify.
const DefaultMaxPasses = 256

// ErrNoFixedPoint indicates the pass limit was reached while the tree
// was still changing.
var ErrNoFixedPoint = errors.New("no fixed point")

// Simplifier holds the settings of a simplification.
type Simplifier struct {
	// MaxPasses bounds the number of passes. Zero means
	// DefaultMaxPasses.
	MaxPasses int
	// Steps, if not nil, records every rewrite.
	Steps *steps.Steps
	// Trace, if not nil, is called with the root after each pass.
	Trace func(pass int, root *tree.Node)
}

// New returns a Simplifier making at most maxPasses passes.
func New(maxPasses int) *Simplifier {
	return &Simplifier{MaxPasses: maxPasses}
}

// Simplify simplifies t in place with the default settings.
func Simplify(t *tree.Tree) error {
	return New(DefaultMaxPasses).Simplify(t)
}

// Simplify rewrites t in place. Bounds learned on the way are added
// to t.Bounds. On error t holds whatever was rewritten so far.
func (s *Simplifier) Simplify(t *tree.Tree) error {
	if t.Bounds == nil {
		t.Bounds = make(tree.Bounds)
	}
	max := s.MaxPasses
	if max <= 0 {
		max = DefaultMaxPasses
	}
	for pass := 1; pass <= max; pass++ {
		before := t.Root.Key()
		root, err := s.node(t.Root, t.Bounds)
		if err != nil {
			return err
		}
		replaced := root != t.Root
		t.Root = root
		if s.Trace != nil {
			s.Trace(pass, root)
		}
		if !replaced && root.Key() == before {
			return nil
		}
	}
	return fmt.Errorf("%w after %d passes: %v", ErrNoFixedPoint, max, t.Root)
}

// Node simplifies the tree rooted at n, returning the new root.
func (s *Simplifier) Node(n *tree.Node) (*tree.Node, tree.Bounds, error) {
	t := tree.NewTree(n)
	if err := s.Simplify(t); err != nil {
		return nil, nil, err
	}
	return t.Root, t.Bounds, nil
}

func (s *Simplifier) record(k steps.Kind, rule, before string, after *tree.Node) {
	if s.Steps.On() {
		s.Steps.Add(k, rule, before, after.String())
	}
}

// node makes one pass over n and returns the node that replaces it.
func (s *Simplifier) node(n *tree.Node, bounds tree.Bounds) (*tree.Node, error) {
	for n.Token().IsOp() && n.Len() == 1 {
		m := n.First()
		s.record(steps.Unwrap, "", n.String(), m)
		n = m
	}
	if !n.Token().IsOp() {
		return n, nil
	}
	for _, c := range n.Operators() {
		r, err := s.node(c, bounds)
		if err != nil {
			return nil, err
		}
		if r != c {
			n.ReplaceOperand(c, r)
		}
	}
	switch {
	case n.Is(token.Divide):
		s.cancel(n, bounds)
	case n.Is(token.Add):
		if m := factor.Factorize(n); m != nil {
			s.record(steps.FactorOut, "", n.String(), m)
			return m, nil
		}
		if m := factor.Collect(n); m != nil {
			s.record(steps.Collect, "", n.String(), m)
			return m, nil
		}
	case n.Is(token.Multiply):
		if m := factor.Combine(n, bounds); m != nil {
			s.record(steps.Combine, "", n.String(), m)
			return m, nil
		}
	}
	return arith.Perform(n, bounds, s.Steps)
}

// Measure weighs a tree for termination checks. Every node counts
// one, except a subtraction which counts more than the sum it is
// rewritten into.
func Measure(n *tree.Node) int {
	m := 0
	n.Walk(func(c *tree.Node) bool {
		if c.Is(token.Subtract) {
			m += 4
		} else {
			m++
		}
		return true
	})
	return m
}
