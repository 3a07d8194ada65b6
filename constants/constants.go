// Package constants holds the named numerical constants substituted
// for variables when an expression is evaluated.
package constants

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	Pi = "3.1415926535897932384626433833"
	E  = "2.7182818284590452353602874714"
)

// Table is an immutable set of named constants. The zero Table is
// empty.
type Table struct {
	values map[string]decimal.Decimal
}

// New copies values into a Table.
func New(values map[string]decimal.Decimal) Table {
	return Table{values: maps.Clone(values)}
}

// Default returns pi (also spelled π) and e.
func Default() Table {
	pi := decimal.RequireFromString(Pi)
	return New(map[string]decimal.Decimal{
		"pi": pi,
		"π":  pi,
		"e":  decimal.RequireFromString(E),
	})
}

// Lookup returns the value of name.
func (t Table) Lookup(name string) (decimal.Decimal, bool) {
	d, ok := t.values[name]
	return d, ok
}

// Float returns the value of name as a float64.
func (t Table) Float(name string) (float64, bool) {
	d, ok := t.values[name]
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// With returns a copy of t that also holds name.
func (t Table) With(name string, value decimal.Decimal) Table {
	c := New(t.values)
	if c.values == nil {
		c.values = make(map[string]decimal.Decimal)
	}
	c.values[name] = value
	return c
}

// Names lists the constants in sorted order.
func (t Table) Names() []string {
	names := maps.Keys(t.values)
	slices.Sort(names)
	return names
}

// Len is the number of constants.
func (t Table) Len() int {
	return len(t.values)
}
