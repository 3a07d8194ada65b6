// Package tree holds expression trees. A tree is built from shared
// *Node handles: the same node may be held by several parents and a
// mutation through one holder is visible through all of them.
//
// Operator nodes keep their operands in an Operands container. For the
// orderless (commutative) operators, Add and Multiply, a child carrying
// the same operator is never nested; its operands are spliced into the
// parent whenever it is inserted.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/algebrars/token"
)

var (
	// ErrAliasing is the panic value (wrapped) raised when a node is
	// mutated while another mutation of the same node is still open.
	ErrAliasing = errors.New("node already being mutated")
	// ErrCycle is the panic value (wrapped) raised when a node is
	// inserted as one of its own operands.
	ErrCycle = errors.New("node inserted into itself")
)

// Node is one expression node: a token and, for operators, its
// operands.
type Node struct {
	tok  token.Token
	ops  Operands
	busy bool
}

// Leaf makes a childless node holding t.
func Leaf(t token.Token) *Node {
	return &Node{tok: t}
}

// Const makes a constant leaf.
func Const(d decimal.Decimal) *Node {
	return Leaf(token.C(d))
}

// Int makes an integer constant leaf.
func Int(n int64) *Node {
	return Leaf(token.Int(n))
}

// Var makes a variable leaf.
func Var(name string) *Node {
	return Leaf(token.V(name))
}

// New makes a node with token t and the listed operands, inserted in
// order.
func New(t token.Token, operands ...*Node) *Node {
	n := &Node{tok: t}
	for _, m := range operands {
		n.add(m)
	}
	return n
}

// Op makes an operator node.
func Op(op token.Op, operands ...*Node) *Node {
	return New(token.O(op), operands...)
}

// Add, Sub, Mul, Div and Pow are shorthands for the binary operators.
func Add(a, b *Node) *Node { return Op(token.Add, a, b) }
func Sub(a, b *Node) *Node { return Op(token.Subtract, a, b) }
func Mul(a, b *Node) *Node { return Op(token.Multiply, a, b) }
func Div(a, b *Node) *Node { return Op(token.Divide, a, b) }
func Pow(a, b *Node) *Node { return Op(token.Pow, a, b) }

// Token returns the token of n.
func (n *Node) Token() token.Token {
	return n.tok
}

// IsConst confirms n is a constant leaf.
func (n *Node) IsConst() bool {
	return n.tok.IsConst()
}

// IsVar confirms n is a variable leaf.
func (n *Node) IsVar() bool {
	return n.tok.IsVar()
}

// Is confirms n is an operator node for op.
func (n *Node) Is(op token.Op) bool {
	return n.tok.Is(op)
}

// Orderless reports whether n is a commutative operator node.
func (n *Node) Orderless() bool {
	return n.tok.Orderless()
}

// IsConstValue confirms n is the constant d.
func (n *Node) IsConstValue(d decimal.Decimal) bool {
	return n.tok.IsConst() && n.tok.Const.Equal(d)
}

// Len is the number of operands of n.
func (n *Node) Len() int {
	return n.ops.Len()
}

// Operands returns the operands of n in canonical calculation order.
// The returned slice is a copy.
func (n *Node) Operands() []*Node {
	return n.ops.calc(n.tok.Orderless())
}

// Display returns the operands of n in reading order.
func (n *Node) Display() []*Node {
	if !n.tok.IsOp() {
		return nil
	}
	return n.ops.display(n.tok.Op)
}

// Order returns the operands of n in insertion order.
func (n *Node) Order() []*Node {
	return append([]*Node(nil), n.ops.order...)
}

// Constants, Variables and Operators return copies of the operand
// buckets of n.
func (n *Node) Constants() []*Node { return append([]*Node(nil), n.ops.consts...) }
func (n *Node) Variables() []*Node { return append([]*Node(nil), n.ops.vars...) }
func (n *Node) Operators() []*Node { return append([]*Node(nil), n.ops.opers...) }

// First returns the first operand in calculation order, or nil.
func (n *Node) First() *Node {
	if n.ops.Len() == 0 {
		return nil
	}
	return n.Operands()[0]
}

func (n *Node) acquire() {
	if n.busy {
		panic(fmt.Errorf("%w: %v", ErrAliasing, n.tok))
	}
	n.busy = true
}

func (n *Node) release() {
	n.busy = false
}

// add inserts m, splicing it when it carries the same orderless
// operator as n.
func (n *Node) add(m *Node) {
	if m == n {
		panic(fmt.Errorf("%w: %v", ErrCycle, n.tok))
	}
	if n.tok.Orderless() && m.tok.Equal(n.tok) {
		for _, c := range m.ops.order {
			n.add(c)
		}
		return
	}
	n.ops.push(m)
}

// AddOperand inserts m into n.
func (n *Node) AddOperand(m *Node) {
	n.acquire()
	defer n.release()
	n.add(m)
}

// RemoveOperand removes the operand m (compared by handle).
func (n *Node) RemoveOperand(m *Node) bool {
	n.acquire()
	defer n.release()
	return n.ops.remove(m)
}

// ReplaceOperand replaces the operand old with m. Ordered nodes keep
// the position of old. For orderless nodes m is inserted afresh, so
// it is spliced if it shares the operator of n.
func (n *Node) ReplaceOperand(old, m *Node) bool {
	n.acquire()
	defer n.release()
	if m == n {
		panic(fmt.Errorf("%w: %v", ErrCycle, n.tok))
	}
	if n.tok.Orderless() {
		if !n.ops.remove(old) {
			return false
		}
		n.add(m)
		return true
	}
	return n.ops.set(old, m)
}

// Consume removes the operands a and b and inserts res in their
// place.
func (n *Node) Consume(a, b, res *Node) {
	n.acquire()
	defer n.release()
	if n.tok.Orderless() {
		n.ops.remove(a)
		n.ops.remove(b)
		n.add(res)
		return
	}
	n.ops.set(a, res)
	n.ops.remove(b)
}

// Equal compares two trees structurally. Operands of orderless nodes
// are compared as multisets.
func (n *Node) Equal(m *Node) bool {
	if n == m {
		return true
	}
	if n == nil || m == nil {
		return false
	}
	if !n.tok.Equal(m.tok) || n.ops.Len() != m.ops.Len() {
		return false
	}
	if !n.tok.Orderless() {
		for i, c := range n.ops.order {
			if !c.Equal(m.ops.order[i]) {
				return false
			}
		}
		return true
	}
	return sameSet(n.ops.consts, m.ops.consts) &&
		sameSet(n.ops.vars, m.ops.vars) &&
		sameSet(n.ops.opers, m.ops.opers)
}

func sameSet(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
next:
	for _, x := range a {
		for j, y := range b {
			if !used[j] && x.Equal(y) {
				used[j] = true
				continue next
			}
		}
		return false
	}
	return true
}

// Key returns a canonical string for n. Two trees are Equal exactly
// when their keys are equal.
func (n *Node) Key() string {
	var b strings.Builder
	n.key(&b)
	return b.String()
}

func (n *Node) key(b *strings.Builder) {
	switch n.tok.Kind {
	case token.Constant:
		b.WriteByte('#')
		b.WriteString(n.tok.Const.String())
		return
	case token.Variable:
		b.WriteByte('$')
		b.WriteString(n.tok.Var)
		return
	}
	b.WriteString(n.tok.Op.String())
	b.WriteByte('(')
	var keys []string
	for _, c := range n.ops.order {
		keys = append(keys, c.Key())
	}
	if n.tok.Orderless() {
		slices.Sort(keys)
	}
	b.WriteString(strings.Join(keys, ","))
	b.WriteByte(')')
}

// Copy returns a deep copy of n that shares no nodes with it.
func (n *Node) Copy() *Node {
	m := &Node{tok: n.tok}
	for _, c := range n.ops.order {
		m.ops.push(c.Copy())
	}
	return m
}

// Substitute returns a copy of n with every variable called name
// replaced by a copy of with.
func Substitute(n *Node, name string, with *Node) *Node {
	if n.tok.IsVar() && n.tok.Var == name {
		return with.Copy()
	}
	m := &Node{tok: n.tok}
	for _, c := range n.ops.order {
		m.add(Substitute(c, name, with))
	}
	return m
}

// Walk visits n and its descendants depth first, stopping the descent
// below any node for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.ops.order {
		c.Walk(fn)
	}
}

// Size counts the nodes of n.
func (n *Node) Size() int {
	size := 0
	n.Walk(func(*Node) bool {
		size++
		return true
	})
	return size
}

// Contains reports whether the variable name occurs in n.
func (n *Node) Contains(name string) bool {
	return n.Count(name) > 0
}

// Count returns the number of occurrences of the variable name in n.
func (n *Node) Count(name string) int {
	count := 0
	n.Walk(func(m *Node) bool {
		if m.tok.IsVar() && m.tok.Var == name {
			count++
		}
		return true
	})
	return count
}

// Names returns the sorted, distinct variable names of n.
func (n *Node) Names() []string {
	seen := make(map[string]bool)
	n.Walk(func(m *Node) bool {
		if m.tok.IsVar() {
			seen[m.tok.Var] = true
		}
		return true
	})
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}
