// Package terms abstracts sums of products of factors. Converting a
// tree into a sum of terms multiplies out every product of sums, so
// the package is how expressions get expanded.
package terms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"zappem.net/pub/math/algebrars/factor"
	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// maxPower is the largest power of a sum that is multiplied out.
const maxPower = 32

// ErrUnsupported indicates an operator that cannot be held as terms.
var ErrUnsupported = errors.New("unsupported operator")

// Exp is an expression held as a sum of terms, indexed by the key of
// the term's factors.
type Exp struct {
	terms map[string]factor.Term
}

// NewExp creates a new expression, summing ts.
func NewExp(ts ...factor.Term) *Exp {
	e := &Exp{
		terms: make(map[string]factor.Term),
	}
	for _, t := range ts {
		e.insert(t)
	}
	return e
}

// Const generates an expression of a constant.
func Const(d decimal.Decimal) *Exp {
	return NewExp(factor.Term{Coeff: d})
}

// Var generates an expression of a single variable.
func Var(name string) *Exp {
	return NewExp(factor.Term{
		Coeff: number.One,
		Fact:  []factor.Power{{Base: tree.Var(name), Exp: number.One}},
	})
}

// IsZero confirms a simplified expression is zero.
func (e *Exp) IsZero() bool {
	return e == nil || len(e.terms) == 0
}

func key(t factor.Term) string {
	if len(t.Fact) == 0 {
		return ""
	}
	return factor.Term{Coeff: number.One, Fact: t.Fact}.Node().Key()
}

// insert merges a term into e, dropping it when its coefficient
// cancels.
func (e *Exp) insert(t factor.Term) {
	if t.Coeff.IsZero() {
		return
	}
	s := key(t)
	old, ok := e.terms[s]
	if !ok {
		e.terms[s] = t
		return
	}
	old.Coeff = old.Coeff.Add(t.Coeff)
	if old.Coeff.IsZero() {
		delete(e.terms, s)
		return
	}
	e.terms[s] = old
}

// Terms returns the terms of e, highest degree first. Terms of equal
// degree are ordered by their factors and the constant term is last.
func (e *Exp) Terms() []factor.Term {
	if e == nil {
		return nil
	}
	type keyed struct {
		s string
		t factor.Term
	}
	var ks []keyed
	for s, t := range e.terms {
		ks = append(ks, keyed{s: s, t: t})
	}
	sort.Slice(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if (a.s == "") != (b.s == "") {
			return b.s == ""
		}
		if c := a.t.Degree().Cmp(b.t.Degree()); c != 0 {
			return c > 0
		}
		return a.s < b.s
	})
	ts := make([]factor.Term, len(ks))
	for i, k := range ks {
		ts[i] = k.t
	}
	return ts
}

// AsNumber returns the value of the constant term. The returned
// boolean is true only when there are no other terms.
func (e *Exp) AsNumber() (decimal.Decimal, bool) {
	if e.IsZero() {
		return decimal.Zero, true
	}
	t, ok := e.terms[""]
	if !ok {
		return decimal.Zero, false
	}
	return t.Coeff, len(e.terms) == 1
}

// Node converts e back into a tree.
func (e *Exp) Node() *tree.Node {
	ts := e.Terms()
	switch len(ts) {
	case 0:
		return tree.Int(0)
	case 1:
		return ts[0].Node()
	}
	sum := tree.Op(token.Add)
	for _, t := range ts {
		sum.AddOperand(t.Node())
	}
	return sum
}

// String represents an expression of terms as a string.
func (e *Exp) String() string {
	return e.Node().String()
}

// Sum adds together expressions. With only one argument, Sum is a
// simple duplicate function.
func Sum(as ...*Exp) *Exp {
	e := NewExp()
	for _, a := range as {
		if a == nil {
			continue
		}
		for _, t := range a.terms {
			e.insert(t)
		}
	}
	return e
}

// Add adds together two expressions and returns a single expression:
// a+b.
func (a *Exp) Add(b *Exp) *Exp {
	return Sum(a, b)
}

// Sub subtracts b from a into a new expression.
func (a *Exp) Sub(b *Exp) *Exp {
	e := Sum(a)
	if b != nil {
		for _, t := range b.terms {
			e.insert(factor.Term{Coeff: t.Coeff.Neg(), Fact: t.Fact})
		}
	}
	return e
}

// Mul computes the product of a series of expressions.
func Mul(as ...*Exp) (*Exp, error) {
	var e *Exp
	for i, a := range as {
		if i == 0 {
			e = Sum(a)
			continue
		}
		f := NewExp()
		for _, p := range a.terms {
			for _, q := range e.terms {
				t := q.Mul(p)
				if err := number.Check(t.Coeff); err != nil {
					return nil, err
				}
				f.insert(t)
			}
		}
		e = f
	}
	return e, nil
}

// Mul computes the product of this expression with some others.
func (e *Exp) Mul(es ...*Exp) (*Exp, error) {
	return Mul(append([]*Exp{e}, es...)...)
}

// Pow multiplies e by itself n times.
func (e *Exp) Pow(n int) (*Exp, error) {
	r := Const(number.One)
	for i := 0; i < n; i++ {
		var err error
		if r, err = r.Mul(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Substitute replaces every occurrence of the variable name with c
// and expands the result.
func (e *Exp) Substitute(name string, c *Exp) (*Exp, error) {
	return FromNode(tree.Substitute(e.Node(), name, c.Node()))
}

// opaque wraps a node that is not expanded any further as a single
// factor.
func opaque(p factor.Power) *Exp {
	return NewExp(factor.Term{Coeff: number.One, Fact: []factor.Power{p}})
}

// FromNode expands n into a sum of terms. Products and integer powers
// of sums are multiplied out; other powers and quotients by
// expressions become factors.
func FromNode(n *tree.Node) (*Exp, error) {
	tok := n.Token()
	switch tok.Kind {
	case token.Constant:
		return Const(tok.Const), nil
	case token.Variable:
		return Var(tok.Var), nil
	}
	ops := n.Operands()
	es := make([]*Exp, len(ops))
	for i, c := range ops {
		var err error
		if es[i], err = FromNode(c); err != nil {
			return nil, err
		}
	}
	switch tok.Op {
	case token.Add:
		return Sum(es...), nil
	case token.Subtract:
		e := es[0]
		for _, b := range es[1:] {
			e = e.Sub(b)
		}
		return e, nil
	case token.Multiply:
		return Mul(es...)
	case token.Divide:
		e := es[0]
		for _, b := range es[1:] {
			var err error
			if e, err = quo(e, b); err != nil {
				return nil, err
			}
		}
		return e, nil
	case token.Pow, token.Root:
		e := es[0]
		for _, b := range es[1:] {
			var err error
			if e, err = pow(tok.Op, e, b); err != nil {
				return nil, err
			}
		}
		return e, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, tok)
}

func quo(a, b *Exp) (*Exp, error) {
	if d, ok := b.AsNumber(); ok {
		inv, err := number.Div(number.One, d)
		if err != nil {
			return nil, fmt.Errorf("%v/%v: %w", a, b, err)
		}
		return a.Mul(Const(inv))
	}
	return a.Mul(opaque(factor.Power{Base: b.Node(), Exp: number.MinusOne}))
}

func pow(op token.Op, a, b *Exp) (*Exp, error) {
	d, ok := b.AsNumber()
	if !ok {
		return opaque(factor.Power{Base: tree.Op(op, a.Node(), b.Node()), Exp: number.One}), nil
	}
	if c, ok := a.AsNumber(); ok {
		f := number.Pow
		if op == token.Root {
			f = number.Root
		}
		r, err := f(c, d)
		if err != nil {
			return nil, fmt.Errorf("%v %v %v: %w", c, op, d, err)
		}
		return Const(r), nil
	}
	if op == token.Root {
		inv, err := number.Div(number.One, d)
		if err != nil {
			return nil, fmt.Errorf("root(%v, %v): %w", a, b, err)
		}
		d = inv
	}
	if d.IsInteger() && d.Sign() >= 0 && d.IntPart() <= maxPower {
		return a.Pow(int(d.IntPart()))
	}
	return opaque(factor.Power{Base: a.Node(), Exp: d}), nil
}

// Expand multiplies out the products of sums in n.
func Expand(n *tree.Node) (*tree.Node, error) {
	e, err := FromNode(n)
	if err != nil {
		return nil, err
	}
	return e.Node(), nil
}
