package tree

import (
	"strings"

	"golang.org/x/exp/slices"

	"zappem.net/pub/math/algebrars/token"
)

// Operands holds the children of an operator node. Children are kept
// in three buckets selected by the kind of their own token, and in
// insertion order for operators where position matters.
type Operands struct {
	consts []*Node
	vars   []*Node
	opers  []*Node
	order  []*Node
}

// Len returns the number of operands.
func (o *Operands) Len() int {
	return len(o.order)
}

func (o *Operands) bucket(k token.Kind) *[]*Node {
	switch k {
	case token.Constant:
		return &o.consts
	case token.Variable:
		return &o.vars
	default:
		return &o.opers
	}
}

func (o *Operands) push(n *Node) {
	b := o.bucket(n.tok.Kind)
	*b = append(*b, n)
	o.order = append(o.order, n)
}

// remove drops the first occurrence of n.
func (o *Operands) remove(n *Node) bool {
	i := slices.Index(o.order, n)
	if i < 0 {
		return false
	}
	o.order = slices.Delete(o.order, i, i+1)
	b := o.bucket(n.tok.Kind)
	j := slices.Index(*b, n)
	*b = slices.Delete(*b, j, j+1)
	return true
}

// set replaces old with n, keeping the position of old.
func (o *Operands) set(old, n *Node) bool {
	i := slices.Index(o.order, old)
	if i < 0 {
		return false
	}
	o.order[i] = n
	b := o.bucket(old.tok.Kind)
	j := slices.Index(*b, old)
	*b = slices.Delete(*b, j, j+1)
	b = o.bucket(n.tok.Kind)
	*b = append(*b, n)
	return true
}

// calc returns the canonical calculation order. Orderless operands
// come as variables (by name), constants, then operators (by key) so
// that equal operands end up adjacent. Other operands keep their
// positions.
func (o *Operands) calc(orderless bool) []*Node {
	if !orderless {
		return slices.Clone(o.order)
	}
	res := make([]*Node, 0, len(o.order))
	vars := slices.Clone(o.vars)
	slices.SortStableFunc(vars, func(a, b *Node) int {
		return strings.Compare(a.tok.Var, b.tok.Var)
	})
	res = append(res, vars...)
	res = append(res, o.consts...)
	res = append(res, sortedByKey(o.opers)...)
	return res
}

// display returns the operands in reading order: coefficients lead a
// product, constants trail a sum.
func (o *Operands) display(op token.Op) []*Node {
	switch op {
	case token.Multiply:
		res := slices.Clone(o.consts)
		res = append(res, o.vars...)
		return append(res, o.opers...)
	case token.Add:
		res := slices.Clone(o.opers)
		res = append(res, o.vars...)
		return append(res, o.consts...)
	}
	return slices.Clone(o.order)
}

func sortedByKey(ns []*Node) []*Node {
	if len(ns) < 2 {
		return slices.Clone(ns)
	}
	type keyed struct {
		key string
		n   *Node
	}
	ks := make([]keyed, len(ns))
	for i, n := range ns {
		ks[i] = keyed{key: n.Key(), n: n}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	res := make([]*Node, len(ns))
	for i, k := range ks {
		res[i] = k.n
	}
	return res
}
