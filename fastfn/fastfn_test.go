package fastfn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/algebrars/constants"
	"zappem.net/pub/math/algebrars/parser"
)

func compile(t *testing.T, text string) *Func {
	t.Helper()
	n, err := parser.ParseNode(text)
	require.NoError(t, err, text)
	return Compile(n, constants.Default())
}

func TestEval(t *testing.T) {
	vs := []struct {
		expr string
		vars map[string]float64
		want float64
	}{
		{"x^2", map[string]float64{"x": 6}, 36},
		{"x^2", map[string]float64{"x": -2}, 4},
		{"x^x", map[string]float64{"x": 6}, 46656},
		{"x^x", map[string]float64{"x": 1}, 1},
		{"e^(x^2)", map[string]float64{"x": 0}, 1},
		{"e^(x^2)", map[string]float64{"x": 1}, math.E},
		{"pi*r^2", map[string]float64{"r": 2}, 4 * math.Pi},
		{"10-4-3", nil, 3},
		{"x/y/2", map[string]float64{"x": 12, "y": 3}, 2},
		{"2*x+3*y+1", map[string]float64{"x": 1, "y": 2}, 9},
		{"e", map[string]float64{"e": 1}, 1},
	}
	for i, v := range vs {
		f := compile(t, v.expr)
		got, err := f.Eval(v.vars)
		if err != nil {
			t.Errorf("[%d] %q: %v", i, v.expr, err)
			continue
		}
		if math.Abs(got-v.want) > 1e-9 {
			t.Errorf("[%d] %q got=%v want=%v", i, v.expr, got, v.want)
		}
	}
}

func TestUnbound(t *testing.T) {
	f := compile(t, "x/y")
	_, err := f.Eval(map[string]float64{"x": 1})
	assert.True(t, errors.Is(err, ErrUnbound), "got %v", err)
	assert.Equal(t, []string{"x", "y"}, f.Names())
	assert.Equal(t, []string{"x", "y"}, f.Free())

	g := compile(t, "pi*r")
	assert.Equal(t, []string{"r"}, g.Free())
}

func TestEvalBatch(t *testing.T) {
	f := compile(t, "2*x+1")
	got, err := f.EvalBatch("x", []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 7}, got)

	_, err = compile(t, "x*y").EvalBatch("x", []float64{1})
	assert.True(t, errors.Is(err, ErrUnbound))

	c, err := compile(t, "7").EvalBatch("x", []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7}, c)
}

func BenchmarkEval(b *testing.B) {
	n, err := parser.ParseNode("x^x")
	if err != nil {
		b.Fatal(err)
	}
	f := Compile(n, constants.Default())
	vars := map[string]float64{"x": 5.5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Eval(vars); err != nil {
			b.Fatal(err)
		}
	}
}
