// Package arith holds the per-operator rewrite rules. A rule looks at
// a pair of adjacent operands, classifies the pair and, when it can,
// produces a single node to replace both.
package arith

import (
	"fmt"

	"github.com/shopspring/decimal"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/steps"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// Class is the classification of an operand pair.
type Class int

const (
	None Class = iota
	EqualOperand
	ByZero
	ByOne
	BothConstants
)

func (c Class) String() string {
	switch c {
	case None:
		return "none"
	case EqualOperand:
		return "equal"
	case ByZero:
		return "by-zero"
	case ByOne:
		return "by-one"
	case BothConstants:
		return "constants"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Description is the classification of the pair (a, b). For ByZero
// and ByOne, Other is the operand that is not the identity.
type Description struct {
	Class Class
	Other *tree.Node
}

// Describe classifies the operand pair (a, b). The operands of an
// orderless node are sorted with constants after variables, so a
// constant b with a constant a means both are constants. Only an
// orderless node may have its identity on the left.
func Describe(a, b *tree.Node, orderless bool) Description {
	if b.IsConst() {
		if a.IsConst() {
			return Description{Class: BothConstants}
		}
		if b.IsConstValue(number.Zero) {
			return Description{Class: ByZero, Other: a}
		}
		if b.IsConstValue(number.One) {
			return Description{Class: ByOne, Other: a}
		}
	}
	if a.Equal(b) {
		return Description{Class: EqualOperand}
	}
	if orderless && a.IsConst() {
		if a.IsConstValue(number.Zero) {
			return Description{Class: ByZero, Other: b}
		}
		if a.IsConstValue(number.One) {
			return Description{Class: ByOne, Other: b}
		}
	}
	return Description{Class: None}
}

// Apply rewrites a op b according to d. A nil node means the pair
// cannot be resolved. A variable divisor adds "≠ 0" to bounds.
func Apply(op token.Op, a, b *tree.Node, d Description, bounds tree.Bounds) (*tree.Node, error) {
	switch op {
	case token.Add:
		return add(a, b, d)
	case token.Subtract:
		return subtract(a, b, d)
	case token.Multiply:
		return multiply(a, b, d)
	case token.Divide:
		if b.IsVar() && bounds != nil {
			bounds.Add(b.Token().Var, tree.Bound{Kind: tree.NotEqual, Value: tree.Int(0)})
		}
		return divide(a, b, d)
	case token.Pow:
		return pow(a, b, d)
	case token.Root:
		return root(a, b, d)
	}
	return nil, nil
}

func constant(d decimal.Decimal, err error) (*tree.Node, error) {
	if err != nil {
		return nil, err
	}
	return tree.Const(d), nil
}

func values(a, b *tree.Node) (decimal.Decimal, decimal.Decimal) {
	return a.Token().Const, b.Token().Const
}

func negate(b *tree.Node) *tree.Node {
	if b.IsConst() {
		return tree.Const(b.Token().Const.Neg())
	}
	return tree.Mul(tree.Int(-1), b)
}

func add(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		return constant(number.Add(x, y))
	case EqualOperand:
		return tree.Mul(tree.Int(2), a), nil
	case ByZero:
		return d.Other, nil
	}
	return nil, nil
}

func subtract(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		return constant(number.Sub(x, y))
	case EqualOperand:
		return tree.Int(0), nil
	case ByZero:
		return d.Other, nil
	}
	if a.IsConstValue(number.Zero) {
		return negate(b), nil
	}
	return tree.Add(a, negate(b)), nil
}

func multiply(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		return constant(number.Mul(x, y))
	case EqualOperand:
		return tree.Pow(a, tree.Int(2)), nil
	case ByZero:
		return tree.Int(0), nil
	case ByOne:
		return d.Other, nil
	}
	return nil, nil
}

func divide(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		return constant(number.Div(x, y))
	case EqualOperand:
		return tree.Int(1), nil
	case ByZero:
		return nil, fmt.Errorf("%v/0: %w", a, number.ErrDivideByZero)
	case ByOne:
		return d.Other, nil
	}
	return nil, nil
}

func pow(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		r, err := number.Pow(x, y)
		if err != nil {
			return nil, fmt.Errorf("%v^%v: %w", x, y, err)
		}
		return tree.Const(r), nil
	case ByZero:
		return tree.Int(1), nil
	case ByOne:
		return d.Other, nil
	}
	return nil, nil
}

func root(a, b *tree.Node, d Description) (*tree.Node, error) {
	switch d.Class {
	case BothConstants:
		x, y := values(a, b)
		r, err := number.Root(x, y)
		if err != nil {
			return nil, fmt.Errorf("root(%v, %v): %w", x, y, err)
		}
		return tree.Const(r), nil
	case ByZero:
		return nil, fmt.Errorf("root(%v, 0): %w", a, number.ErrDivideByZero)
	case ByOne:
		return d.Other, nil
	}
	return nil, nil
}

// Perform applies the rules of n's operator to adjacent operand pairs
// in calculation order until no pair resolves. Each resolved pair is
// consumed and its result inserted into n. The returned node replaces
// n: it is n itself, or its only remaining operand.
func Perform(n *tree.Node, bounds tree.Bounds, st *steps.Steps) (*tree.Node, error) {
	op := n.Token().Op
	for skip := 0; ; {
		ops := n.Operands()
		if skip >= len(ops)-1 {
			break
		}
		a, b := ops[skip], ops[skip+1]
		d := Describe(a, b, n.Orderless())
		res, err := Apply(op, a, b, d, bounds)
		if err != nil {
			return nil, err
		}
		if res == nil {
			skip++
			continue
		}
		var before string
		if st.On() {
			before = n.String()
		}
		n.Consume(a, b, res)
		if st.On() {
			st.Add(steps.PerformOp, fmt.Sprintf("%v %v", op, d.Class), before, n.String())
		}
		skip = 0
	}
	if n.Len() == 1 {
		return n.First(), nil
	}
	return n, nil
}
