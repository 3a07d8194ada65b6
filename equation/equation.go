// Package equation manipulates equations of two expressions and
// solves them for a variable that occurs once.
package equation

import (
	"errors"
	"fmt"
	"strings"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/parser"
	"zappem.net/pub/math/algebrars/simplify"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

var (
	// ErrNotEquation indicates text without exactly one "=".
	ErrNotEquation = errors.New("not an equation")
	// ErrNoVariable indicates the variable solved for is absent.
	ErrNoVariable = errors.New("variable not present")
	// ErrUnsolvable indicates the variable cannot be isolated, for
	// example because it occurs more than once or in an exponent.
	ErrUnsolvable = errors.New("unable to isolate variable")
)

// Equation holds Left = Right.
type Equation struct {
	Left, Right *tree.Tree
	// Simplifier is used by Solve. Nil means the default settings.
	Simplifier *simplify.Simplifier
}

// New returns the equation l = r.
func New(l, r *tree.Node) *Equation {
	return &Equation{Left: tree.NewTree(l), Right: tree.NewTree(r)}
}

// Parse parses "lhs = rhs".
func Parse(text string) (*Equation, error) {
	sides := strings.Split(text, "=")
	if len(sides) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrNotEquation, text)
	}
	l, err := parser.ParseNode(sides[0])
	if err != nil {
		return nil, fmt.Errorf("left side: %w", err)
	}
	r, err := parser.ParseNode(sides[1])
	if err != nil {
		return nil, fmt.Errorf("right side: %w", err)
	}
	return New(l, r), nil
}

func (e *Equation) String() string {
	return fmt.Sprintf("%v = %v", e.Left, e.Right)
}

// ApplyBoth applies (side op n) to both sides. Multiplying or
// dividing both sides by zero is refused.
func (e *Equation) ApplyBoth(op token.Op, n *tree.Node) error {
	if (op == token.Multiply || op == token.Divide) && n.IsConstValue(number.Zero) {
		return fmt.Errorf("%v both sides by 0: %w", op, number.ErrDivideByZero)
	}
	e.Left.AddOp(op, n.Copy())
	e.Right.AddOp(op, n.Copy())
	return nil
}

// FlipSides swaps the two sides.
func (e *Equation) FlipSides() {
	e.Left, e.Right = e.Right, e.Left
}

// Solution is the value of a variable that satisfies an equation,
// valid within Bounds.
type Solution struct {
	Var    string
	Value  *tree.Node
	Bounds tree.Bounds
}

func (s *Solution) String() string {
	if len(s.Bounds) == 0 {
		return fmt.Sprintf("%s = %v", s.Var, s.Value)
	}
	return fmt.Sprintf("%s = %v, where %v", s.Var, s.Value, s.Bounds)
}

func (e *Equation) simplifier() *simplify.Simplifier {
	if e.Simplifier != nil {
		return e.Simplifier
	}
	return simplify.New(simplify.DefaultMaxPasses)
}

// Solve finds the value of name. The difference of the two sides is
// simplified and the single occurrence of name is then isolated by
// inverting the operators above it. Even powers yield the principal
// root only.
func (e *Equation) Solve(name string) (*Solution, error) {
	s := e.simplifier()
	bounds := make(tree.Bounds)
	bounds.Merge(e.Left.Bounds)
	bounds.Merge(e.Right.Bounds)

	d, b, err := s.Node(tree.Sub(e.Left.Root.Copy(), e.Right.Root.Copy()))
	if err != nil {
		return nil, err
	}
	bounds.Merge(b)
	switch d.Count(name) {
	case 0:
		return nil, fmt.Errorf("%w: %s in %v", ErrNoVariable, name, e)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s occurs %d times in %v = 0", ErrUnsolvable, name, d.Count(name), d)
	}

	rhs := tree.Int(0)
	for n := d; !n.IsVar(); {
		if !n.Token().IsOp() {
			return nil, fmt.Errorf("%w: %v", ErrUnsolvable, n)
		}
		ops := n.Operands()
		at := -1
		for i, c := range ops {
			if c.Contains(name) {
				at = i
				break
			}
		}
		if at < 0 {
			return nil, fmt.Errorf("%w: lost %s in %v", ErrUnsolvable, name, n)
		}
		others := make([]*tree.Node, 0, len(ops)-1)
		for i, c := range ops {
			if i != at {
				others = append(others, c.Copy())
			}
		}
		if rhs, err = invert(n.Token().Op, at, others, rhs); err != nil {
			return nil, fmt.Errorf("solving %v = 0 for %s: %w", d, name, err)
		}
		n = ops[at]
	}

	v, b, err := s.Node(rhs)
	if err != nil {
		return nil, err
	}
	bounds.Merge(b)
	return &Solution{Var: name, Value: v, Bounds: bounds}, nil
}

func join(op token.Op, ns []*tree.Node) *tree.Node {
	if len(ns) == 1 {
		return ns[0]
	}
	return tree.Op(op, ns...)
}

// invert returns x such that op applied to the operands, with x
// placed at position at, equals rhs. others are the remaining
// operands in order.
func invert(op token.Op, at int, others []*tree.Node, rhs *tree.Node) (*tree.Node, error) {
	switch op {
	case token.Add:
		return tree.Sub(rhs, join(token.Add, others)), nil
	case token.Multiply:
		return tree.Div(rhs, join(token.Multiply, others)), nil
	case token.Subtract:
		if at == 0 {
			return tree.Add(rhs, join(token.Add, others)), nil
		}
		// a - ... - x - ... = rhs
		rest := append([]*tree.Node{rhs}, others[1:]...)
		return tree.Sub(others[0], join(token.Add, rest)), nil
	case token.Divide:
		if at == 0 {
			return tree.Mul(rhs, join(token.Multiply, others)), nil
		}
		rest := append([]*tree.Node{rhs}, others[1:]...)
		return tree.Div(others[0], join(token.Multiply, rest)), nil
	case token.Pow:
		if at != 0 {
			return nil, fmt.Errorf("%w: variable exponent", ErrUnsolvable)
		}
		return tree.Op(token.Root, rhs, join(token.Multiply, others)), nil
	case token.Root:
		if at != 0 {
			return nil, fmt.Errorf("%w: variable root", ErrUnsolvable)
		}
		return tree.Pow(rhs, join(token.Multiply, others)), nil
	}
	return nil, fmt.Errorf("%w: operator %v", ErrUnsolvable, op)
}
