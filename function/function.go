// Package function evaluates a simplified expression at exact decimal
// values.
package function

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/algebrars/constants"
	"zappem.net/pub/math/algebrars/simplify"
	"zappem.net/pub/math/algebrars/tree"
)

// ErrOutOfDomain indicates a value that breaks one of the bounds the
// simplifier recorded, such as a variable that was divided by.
var ErrOutOfDomain = errors.New("value outside domain")

// Function is an expression simplified once and evaluated many times.
type Function struct {
	// Tree is the simplified expression together with its bounds.
	Tree *tree.Tree

	s     *simplify.Simplifier
	table constants.Table
}

// New simplifies a copy of t. A nil s uses the default settings.
func New(t *tree.Tree, s *simplify.Simplifier, table constants.Table) (*Function, error) {
	if s == nil {
		s = simplify.New(simplify.DefaultMaxPasses)
	}
	c := t.Copy()
	if err := s.Simplify(c); err != nil {
		return nil, err
	}
	return &Function{Tree: c, s: s, table: table}, nil
}

// Variables lists the names that are not known constants. Names
// that simplified away but are still bounded are included.
func (f *Function) Variables() []string {
	seen := make(map[string]bool)
	for _, name := range f.Tree.Root.Names() {
		seen[name] = true
	}
	for name := range f.Tree.Bounds {
		seen[name] = true
	}
	for name := range seen {
		if _, ok := f.table.Lookup(name); ok {
			delete(seen, name)
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

func (f *Function) check(name string, v decimal.Decimal) error {
	for _, b := range f.Tree.Bounds[name] {
		if b.Kind == tree.NotEqual && b.Value.IsConstValue(v) {
			return fmt.Errorf("%w: %s=%v but %s %v", ErrOutOfDomain, name, v, name, b)
		}
	}
	return nil
}

// Evaluate substitutes values, and constants for any remaining names
// the table knows, and simplifies the result. Names with no value
// stay symbolic.
func (f *Function) Evaluate(values map[string]decimal.Decimal) (*tree.Node, error) {
	for name, v := range values {
		if err := f.check(name, v); err != nil {
			return nil, err
		}
	}
	n := f.Tree.Root.Copy()
	for _, name := range n.Names() {
		v, ok := values[name]
		if !ok {
			if v, ok = f.table.Lookup(name); !ok {
				continue
			}
		}
		n = tree.Substitute(n, name, tree.Const(v))
	}
	r, _, err := f.s.Node(n)
	return r, err
}

// At evaluates the function with every variable set to x.
func (f *Function) At(x decimal.Decimal) (*tree.Node, error) {
	values := make(map[string]decimal.Decimal)
	for _, name := range f.Variables() {
		values[name] = x
	}
	return f.Evaluate(values)
}
