// Package fastfn evaluates an expression tree with float64 arithmetic.
// It trades the exactness of the decimal simplifier for speed when an
// expression is sampled at many points.
package fastfn

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/math/algebrars/constants"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// ErrUnbound indicates a variable with no value and no constant of
// the same name.
var ErrUnbound = errors.New("unbound variable")

type instr struct {
	kind tree.InstrKind
	val  float64
	slot int
	op   token.Op
}

// Func is a compiled expression. A Func reuses its stack between
// evaluations, so it must not be evaluated concurrently.
type Func struct {
	code  []instr
	names []string
	// fallback values from the constant table, valid where known is
	// set.
	fallback []float64
	known    []bool
	vals     []float64
	stack    []float64
}

// Compile flattens n into a Func. Variable names that also appear in
// table are evaluated as those constants unless the caller supplies
// a value.
func Compile(n *tree.Node, table constants.Table) *Func {
	p := tree.Flatten(n)
	f := &Func{
		code:     make([]instr, len(p.Code)),
		names:    p.Names,
		fallback: make([]float64, len(p.Names)),
		known:    make([]bool, len(p.Names)),
		vals:     make([]float64, len(p.Names)),
		stack:    make([]float64, 0, p.Depth),
	}
	for i, in := range p.Code {
		f.code[i] = instr{
			kind: in.Kind,
			val:  in.Value.InexactFloat64(),
			slot: in.Slot,
			op:   in.Op,
		}
	}
	for i, name := range p.Names {
		f.fallback[i], f.known[i] = table.Float(name)
	}
	return f
}

// Names lists the variables of the expression in slot order.
func (f *Func) Names() []string {
	return append([]string(nil), f.names...)
}

// Free lists the variables that have no constant fallback and so
// must be supplied to Eval.
func (f *Func) Free() (names []string) {
	for i, name := range f.names {
		if !f.known[i] {
			names = append(names, name)
		}
	}
	return
}

func (f *Func) bind(vars map[string]float64) error {
	for i, name := range f.names {
		if v, ok := vars[name]; ok {
			f.vals[i] = v
		} else if f.known[i] {
			f.vals[i] = f.fallback[i]
		} else {
			return fmt.Errorf("%w: %q", ErrUnbound, name)
		}
	}
	return nil
}

func apply(op token.Op, a, b float64) float64 {
	switch op {
	case token.Add:
		return a + b
	case token.Subtract:
		return a - b
	case token.Multiply:
		return a * b
	case token.Divide:
		return a / b
	case token.Pow:
		return math.Pow(a, b)
	case token.Root:
		return math.Pow(a, 1/b)
	}
	return math.NaN()
}

func (f *Func) run() float64 {
	s := f.stack[:0]
	for _, in := range f.code {
		switch in.kind {
		case tree.Push:
			s = append(s, in.val)
		case tree.Load:
			s = append(s, f.vals[in.slot])
		case tree.Apply:
			k := len(s) - 1
			s[k-1] = apply(in.op, s[k-1], s[k])
			s = s[:k]
		}
	}
	f.stack = s
	return s[0]
}

// Eval computes the expression with the given variable values.
func (f *Func) Eval(vars map[string]float64) (float64, error) {
	if err := f.bind(vars); err != nil {
		return 0, err
	}
	return f.run(), nil
}

// EvalBatch evaluates the expression once for each value of the
// variable name. Every other variable must be a known constant.
func (f *Func) EvalBatch(name string, xs []float64) ([]float64, error) {
	vars := map[string]float64{name: 0}
	if err := f.bind(vars); err != nil {
		return nil, err
	}
	slot := -1
	for i, v := range f.names {
		if v == name {
			slot = i
		}
	}
	res := make([]float64, len(xs))
	for i, x := range xs {
		if slot >= 0 {
			f.vals[slot] = x
		}
		res[i] = f.run()
	}
	return res, nil
}
