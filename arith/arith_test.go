package arith

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/steps"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

func TestDescribe(t *testing.T) {
	x, y := tree.Var("x"), tree.Var("y")
	vs := []struct {
		a, b      *tree.Node
		orderless bool
		class     Class
		other     *tree.Node
	}{
		{tree.Int(2), tree.Int(3), true, BothConstants, nil},
		{x, tree.Int(0), false, ByZero, x},
		{x, tree.Int(1), false, ByOne, x},
		{tree.Int(0), x, true, ByZero, x},
		{tree.Int(1), x, true, ByOne, x},
		{tree.Int(0), x, false, None, nil},
		{x, tree.Var("x"), false, EqualOperand, nil},
		{tree.Add(x, y), tree.Add(y, x), true, EqualOperand, nil},
		{x, y, true, None, nil},
		{x, tree.Int(5), true, None, nil},
	}
	for i, v := range vs {
		d := Describe(v.a, v.b, v.orderless)
		if d.Class != v.class || d.Other != v.other {
			t.Errorf("[%d] got=%v/%v want=%v/%v", i, d.Class, d.Other, v.class, v.other)
		}
	}
}

func TestApply(t *testing.T) {
	x := tree.Var("x")
	vs := []struct {
		op   token.Op
		a, b *tree.Node
		want string
	}{
		{token.Add, tree.Int(2), tree.Int(3), "5"},
		{token.Add, x, tree.Var("x"), "2*x"},
		{token.Add, x, tree.Int(0), "x"},
		{token.Add, x, tree.Int(4), ""},
		{token.Subtract, tree.Int(2), tree.Int(3), "-1"},
		{token.Subtract, x, tree.Var("x"), "0"},
		{token.Subtract, x, tree.Int(0), "x"},
		{token.Subtract, tree.Int(0), x, "(-1)*x"},
		{token.Subtract, x, tree.Int(4), "x+(-4)"},
		{token.Subtract, x, tree.Var("y"), "(-1)*y+x"},
		{token.Multiply, tree.Int(2), tree.Int(3), "6"},
		{token.Multiply, x, tree.Var("x"), "x^2"},
		{token.Multiply, x, tree.Int(0), "0"},
		{token.Multiply, tree.Int(1), x, "x"},
		{token.Multiply, x, tree.Var("y"), ""},
		{token.Divide, tree.Int(1), tree.Int(4), "0.25"},
		{token.Divide, x, tree.Var("x"), "1"},
		{token.Divide, x, tree.Int(1), "x"},
		{token.Divide, tree.Int(1), x, ""},
		{token.Pow, tree.Int(2), tree.Int(10), "1024"},
		{token.Pow, x, tree.Int(0), "1"},
		{token.Pow, x, tree.Int(1), "x"},
		{token.Pow, x, tree.Var("x"), ""},
		{token.Root, tree.Int(9), tree.Int(2), "3"},
		{token.Root, x, tree.Int(1), "x"},
		{token.Root, tree.Int(-8), tree.Int(3), "-2"},
		{token.Multiply, tree.Const(number.Min), tree.Const(number.Min), "0"},
		{token.Add, tree.Const(number.Min), tree.Const(number.Min), "0.0000000000000000000000000002"},
	}
	for i, v := range vs {
		d := Describe(v.a, v.b, v.op.Info().Orderless)
		got, err := Apply(v.op, v.a, v.b, d, tree.Bounds{})
		if err != nil {
			t.Errorf("[%d] %v %v %v failed: %v", i, v.a, v.op, v.b, err)
			continue
		}
		if got == nil {
			if v.want != "" {
				t.Errorf("[%d] %v %v %v unresolved, want=%q", i, v.a, v.op, v.b, v.want)
			}
			continue
		}
		if s := got.String(); s != v.want {
			t.Errorf("[%d] got=%q want=%q", i, s, v.want)
		}
	}
}

func TestApplyErrors(t *testing.T) {
	vs := []struct {
		op   token.Op
		a, b *tree.Node
		want error
	}{
		{token.Divide, tree.Int(1), tree.Int(0), number.ErrDivideByZero},
		{token.Divide, tree.Var("x"), tree.Int(0), number.ErrDivideByZero},
		{token.Pow, tree.Int(10), tree.Int(40), number.ErrOverflow},
		{token.Pow, tree.Int(-40), tree.Int(-40), number.ErrOverflow},
		{token.Root, tree.Var("x"), tree.Int(0), number.ErrDivideByZero},
		{token.Root, tree.Int(-4), tree.Int(2), number.ErrUndefined},
		{token.Multiply, tree.Const(number.Max), tree.Int(2), number.ErrOverflow},
	}
	for i, v := range vs {
		d := Describe(v.a, v.b, false)
		_, err := Apply(v.op, v.a, v.b, d, nil)
		if !errors.Is(err, v.want) {
			t.Errorf("[%d] got=%v want=%v", i, err, v.want)
		}
	}
}

func TestDivideBounds(t *testing.T) {
	bounds := tree.Bounds{}
	x := tree.Var("x")
	_, err := Apply(token.Divide, tree.Int(1), x, Describe(tree.Int(1), x, false), bounds)
	require.NoError(t, err)
	require.Len(t, bounds["x"], 1)
	assert.Equal(t, tree.NotEqual, bounds["x"][0].Kind)
	assert.True(t, bounds["x"][0].Value.IsConstValue(number.Zero))
}

func TestPerform(t *testing.T) {
	st := &steps.Steps{}
	n := tree.Op(token.Add, tree.Int(1), tree.Int(2), tree.Int(3))
	got, err := Perform(n, nil, st)
	require.NoError(t, err)
	assert.Equal(t, "6", got.String())
	assert.Equal(t, 2, st.Len())

	// x*2*3 folds its constants and keeps the product.
	m := tree.Op(token.Multiply, tree.Var("x"), tree.Int(2), tree.Int(3))
	got, err = Perform(m, nil, nil)
	require.NoError(t, err)
	assert.Same(t, m, got)
	assert.Equal(t, "6*x", got.String())

	s := tree.Sub(tree.Var("x"), tree.Var("x"))
	got, err = Perform(s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())

	// The result of a rule is spliced when it shares the operator.
	a := tree.Op(token.Add, tree.Var("y"), tree.Var("x"), tree.Var("x"))
	got, err = Perform(a, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2*x+y", got.String())
}
