package factor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/algebrars/parser"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

func parse(t *testing.T, s string) *tree.Node {
	t.Helper()
	n, err := parser.ParseNode(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func decimals(ss ...string) []decimal.Decimal {
	var ds []decimal.Decimal
	for _, s := range ss {
		ds = append(ds, decimal.RequireFromString(s))
	}
	return ds
}

func TestAsPower(t *testing.T) {
	vs := []struct {
		n         *tree.Node
		base, exp string
	}{
		{n: tree.Var("x"), base: "x", exp: "1"},
		{n: tree.Pow(tree.Var("x"), tree.Int(3)), base: "x", exp: "3"},
		{n: tree.Op(token.Root, tree.Var("y"), tree.Int(2)), base: "y", exp: "0.5"},
		{n: tree.Pow(tree.Var("x"), tree.Var("n")), base: "x^n", exp: "1"},
		{n: tree.Int(7), base: "7", exp: "1"},
	}
	for i, v := range vs {
		p := AsPower(v.n)
		if got := p.Base.String(); got != v.base {
			t.Errorf("[%d] base got=%q want=%q", i, got, v.base)
		}
		if got := p.Exp.String(); got != v.exp {
			t.Errorf("[%d] exp got=%q want=%q", i, got, v.exp)
		}
	}
}

func TestDecompose(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{in: "3", want: "3"},
		{in: "x", want: "x"},
		{in: "2*x*3", want: "6*x"},
		{in: "x*y*x^2", want: "y*x^3"},
		{in: "2*(a+b)^2", want: "2*(a+b)^2"},
		{in: "x+1", want: "x+1"},
	}
	for i, v := range vs {
		if got := Decompose(parse(t, v.in)).String(); got != v.want {
			t.Errorf("[%d] got=%q want=%q", i, got, v.want)
		}
	}
	x := tree.Var("x")
	n := tree.Op(token.Multiply, tree.Int(4), tree.Pow(x, tree.Int(2)), tree.Pow(x, tree.Int(-2)))
	assert.Equal(t, "4", Decompose(n).String())
}

func TestCommonConstant(t *testing.T) {
	vs := []struct {
		in   []decimal.Decimal
		want string
	}{
		{in: decimals("2")},
		{in: decimals("2", "3")},
		{in: decimals("2", "4"), want: "2"},
		{in: decimals("4", "6"), want: "2"},
		{in: decimals("4", "8", "12"), want: "4"},
		{in: decimals("-4", "8"), want: "4"},
		{in: decimals("4", "8", "0.5"), want: "0.5"},
		{in: decimals("0.5", "0.75"), want: "0.25"},
		{in: decimals("0", "0")},
		{in: decimals("1", "5", "-5")},
	}
	for i, v := range vs {
		d, ok := CommonConstant(v.in)
		if v.want == "" {
			if ok {
				t.Errorf("[%d] got=%v want none", i, d)
			}
			continue
		}
		if !ok || d.String() != v.want {
			t.Errorf("[%d] got=%v,%v want=%q", i, d, ok, v.want)
		}
	}
}

func TestGCF(t *testing.T) {
	x := tree.Var("x")
	inv := func(n int64) *tree.Node { return tree.Pow(x, tree.Int(-n)) }
	vs := []struct {
		a, b *tree.Node
		want string
	}{
		{a: parse(t, "x^2*y"), b: parse(t, "x*y^3"), want: "x*y"},
		{a: parse(t, "x^2"), b: parse(t, "y"), want: "1"},
		{a: inv(1), b: inv(3), want: "x^(-1)"},
		{a: inv(1), b: x, want: "1"},
		{a: parse(t, "2*(a+b)*c"), b: parse(t, "(b+a)^2"), want: "a+b"},
	}
	for i, v := range vs {
		g := GCF(Decompose(v.a).Fact, Decompose(v.b).Fact)
		if got := (Term{Coeff: decimal.NewFromInt(1), Fact: g}).String(); got != v.want {
			t.Errorf("[%d] got=%q want=%q", i, got, v.want)
		}
	}
}

func TestQuo(t *testing.T) {
	a := Decompose(parse(t, "6*x^3*y"))
	f := Decompose(parse(t, "3*x"))
	assert.Equal(t, "2*y*x^2", a.Quo(f).String())
	assert.Equal(t, "1", f.Quo(f).String())
	assert.True(t, f.Quo(f).Trivial())
}

func TestFactorize(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{in: "2*x + 4", want: "2*(x+2)"},
		{in: "x^2 + x^3", want: "x^2*(x+1)"},
		{in: "3*x*y + 6*y", want: "3*y*(x+2)"},
		{in: "2*x + x", want: "x*(2+1)"},
		{in: "x + y", want: ""},
		{in: "1 + 2", want: ""},
		{in: "x + 1", want: ""},
		{in: "x", want: ""},
	}
	for i, v := range vs {
		got := Factorize(parse(t, v.in))
		if v.want == "" {
			if got != nil {
				t.Errorf("[%d] %q got=%q want nil", i, v.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("[%d] %q not factored", i, v.in)
			continue
		}
		if !got.Equal(parse(t, v.want)) {
			t.Errorf("[%d] got=%q want=%q", i, got, v.want)
		}
	}
}

func TestCollect(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{in: "2*x + y + 3*x", want: "5*x+y"},
		{in: "x + 2 + 3*x", want: "4*x+2"},
		{in: "x*y + 2*y*x + 1 + 2", want: "3*x*y+1+2"},
		{in: "x - x", want: ""},
		{in: "x + y", want: ""},
	}
	for i, v := range vs {
		got := Collect(parse(t, v.in))
		if v.want == "" {
			if got != nil {
				t.Errorf("[%d] %q got=%q want nil", i, v.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("[%d] %q not collected", i, v.in)
			continue
		}
		if !got.Equal(parse(t, v.want)) {
			t.Errorf("[%d] got=%q want=%q", i, got, v.want)
		}
	}
}

func TestCombine(t *testing.T) {
	assert.Equal(t, "x^3", Combine(parse(t, "x*x^2"), nil).String())
	assert.Equal(t, "2*y*x^2", Combine(parse(t, "2*x*y*x"), nil).String())
	x := tree.Var("x")
	n := tree.Op(token.Multiply, tree.Int(3), x, tree.Pow(x, tree.Int(-1)))
	assert.Equal(t, "3", Combine(n, nil).String())
	assert.Nil(t, Combine(parse(t, "2*x*y"), nil))
	assert.Nil(t, Combine(parse(t, "x+x"), nil))
}

func TestCombineBounds(t *testing.T) {
	x, y := tree.Var("x"), tree.Var("y")
	vs := []struct {
		n     *tree.Node
		want  string
		names []string
	}{
		{tree.Op(token.Multiply, tree.Pow(x, tree.Int(2)), tree.Pow(x.Copy(), tree.Int(-2))), "1", []string{"x"}},
		{tree.Op(token.Multiply, tree.Pow(x, tree.Int(3)), tree.Pow(x.Copy(), tree.Int(-2))), "x", []string{"x"}},
		{tree.Op(token.Multiply, y, tree.Pow(x, tree.Int(-2)), tree.Pow(x.Copy(), tree.Int(-1))), "y*x^(-3)", nil},
		{tree.Op(token.Multiply, x, x.Copy()), "x^2", nil},
	}
	for i, v := range vs {
		bounds := tree.Bounds{}
		got := Combine(v.n, bounds)
		if got == nil {
			t.Errorf("[%d] %v not combined", i, v.n)
			continue
		}
		if s := got.String(); s != v.want {
			t.Errorf("[%d] got=%q want=%q", i, s, v.want)
		}
		assert.Len(t, bounds, len(v.names), "[%d]", i)
		for _, name := range v.names {
			require.Len(t, bounds[name], 1)
			assert.Equal(t, tree.NotEqual, bounds[name][0].Kind)
		}
	}
}
