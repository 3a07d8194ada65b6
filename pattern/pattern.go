// Package pattern matches expression trees against templates. Every
// variable of a template is a placeholder that binds to the subtree
// found in its position.
package pattern

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"zappem.net/pub/math/algebrars/parser"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// Bindings maps placeholder names to the subtrees they matched.
type Bindings map[string]*tree.Node

// Names returns the bound placeholder names in sorted order.
func (b Bindings) Names() []string {
	names := maps.Keys(b)
	slices.Sort(names)
	return names
}

func (b Bindings) String() string {
	var s []string
	for _, name := range b.Names() {
		s = append(s, fmt.Sprintf("%s=%v", name, b[name]))
	}
	return strings.Join(s, ", ")
}

// Match unifies n with the template p. Constants of p must equal the
// candidate, operators must agree in operator and operand count with
// operands matched in calculation order, and a placeholder used more
// than once must match equal subtrees each time.
func Match(n, p *tree.Node) (Bindings, bool) {
	b := make(Bindings)
	if !match(n, p, b) {
		return nil, false
	}
	return b, true
}

func match(n, p *tree.Node, b Bindings) bool {
	switch p.Token().Kind {
	case token.Constant:
		return n.Equal(p)
	case token.Variable:
		name := p.Token().Var
		if old, ok := b[name]; ok {
			return old.Equal(n)
		}
		b[name] = n
		return true
	}
	if !n.Token().Equal(p.Token()) || n.Len() != p.Len() {
		return false
	}
	ns, ps := n.Operands(), p.Operands()
	for i, q := range ps {
		if !match(ns[i], q, b) {
			return false
		}
	}
	return true
}

// Like parses template and matches n against it.
func Like(n *tree.Node, template string) (Bindings, bool, error) {
	p, err := parser.ParseNode(template)
	if err != nil {
		return nil, false, fmt.Errorf("template %q: %w", template, err)
	}
	b, ok := Match(n, p)
	return b, ok, nil
}

// Instantiate copies the template p with every bound placeholder
// replaced by a copy of its binding.
func Instantiate(p *tree.Node, b Bindings) *tree.Node {
	if p.IsVar() {
		if m, ok := b[p.Token().Var]; ok {
			return m.Copy()
		}
	}
	if p.Len() == 0 {
		return p.Copy()
	}
	n := tree.New(p.Token())
	for _, c := range p.Order() {
		n.AddOperand(Instantiate(c, b))
	}
	return n
}

// Rewrite returns to, instantiated with the bindings of n matched
// against from. It returns nil when n does not match.
func Rewrite(n *tree.Node, from, to string) (*tree.Node, error) {
	b, ok, err := Like(n, from)
	if err != nil || !ok {
		return nil, err
	}
	p, err := parser.ParseNode(to)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", to, err)
	}
	return Instantiate(p, b), nil
}
