package simplify

import (
	"zappem.net/pub/math/algebrars/factor"
	"zappem.net/pub/math/algebrars/steps"
	"zappem.net/pub/math/algebrars/tree"
)

// cancel divides the factor common to both sides of the quotient n
// out of each side. Equal sides are left for the arithmetic rules
// and constant quotients for folding. Variables cancelled from the
// divisor are recorded as non-zero.
func (s *Simplifier) cancel(n *tree.Node, bounds tree.Bounds) {
	ops := n.Order()
	if len(ops) != 2 {
		return
	}
	l, r := ops[0], ops[1]
	if (l.IsConst() && r.IsConst()) || l.Equal(r) {
		return
	}
	lt, rt := factor.Decompose(l), factor.Decompose(r)
	f := factor.Common(lt, rt)
	if f.Trivial() {
		return
	}
	var before string
	if s.Steps.On() {
		before = n.String()
	}
	for _, p := range f.Fact {
		if p.Base.IsVar() {
			bounds.Add(p.Base.Token().Var, tree.Bound{Kind: tree.NotEqual, Value: tree.Int(0)})
		}
	}
	n.ReplaceOperand(l, lt.Quo(f).Node())
	n.ReplaceOperand(r, rt.Quo(f).Node())
	s.record(steps.Cancel, f.String(), before, n)
}
