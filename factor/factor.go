// Package factor decomposes products into a numerical coefficient and
// a list of base^exponent factors, and uses that form to pull common
// factors out of sums and quotients.
package factor

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

// maxDivisor bounds the search for a common non-integer divisor.
const maxDivisor = 10000

// Power is a base raised to a constant exponent.
type Power struct {
	Base *tree.Node
	Exp  decimal.Decimal
}

// AsPower splits n into base and exponent. A node that is not a power
// with a constant exponent is its own base, raised to 1.
func AsPower(n *tree.Node) Power {
	if n.Len() == 2 && (n.Is(token.Pow) || n.Is(token.Root)) {
		ops := n.Order()
		if e := ops[1]; e.IsConst() {
			if n.Is(token.Pow) {
				return Power{Base: ops[0], Exp: e.Token().Const}
			}
			if inv, err := number.Div(number.One, e.Token().Const); err == nil {
				return Power{Base: ops[0], Exp: inv}
			}
		}
	}
	return Power{Base: n, Exp: number.One}
}

// Node rebuilds the power as a tree. The base is copied.
func (p Power) Node() *tree.Node {
	if p.Exp.Equal(number.One) {
		return p.Base.Copy()
	}
	return tree.Pow(p.Base.Copy(), tree.Const(p.Exp))
}

func (p Power) String() string {
	return p.Node().String()
}

// ByBase sorts powers by the canonical key of their base.
type ByBase []Power

func (a ByBase) Len() int           { return len(a) }
func (a ByBase) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByBase) Less(i, j int) bool { return a[i].Base.Key() < a[j].Base.Key() }

// Term is a product: a coefficient times factors with distinct bases.
type Term struct {
	Coeff decimal.Decimal
	Fact  []Power
}

// Decompose splits n into a Term. Factors with equal bases are
// merged and factors whose exponents cancel are dropped.
func Decompose(n *tree.Node) Term {
	if n.IsConst() {
		return Term{Coeff: n.Token().Const}
	}
	t := Term{Coeff: number.One}
	if !n.Is(token.Multiply) {
		t.Fact = []Power{AsPower(n)}
		return t
	}
	for _, m := range n.Operands() {
		if m.IsConst() {
			t.Coeff = number.Round(t.Coeff.Mul(m.Token().Const))
			continue
		}
		t.Fact = merge(t.Fact, AsPower(m))
	}
	sort.Stable(ByBase(t.Fact))
	return t
}

// merge multiplies p into fs.
func merge(fs []Power, p Power) []Power {
	for i, f := range fs {
		if !f.Base.Equal(p.Base) {
			continue
		}
		e := f.Exp.Add(p.Exp)
		if e.IsZero() {
			return append(fs[:i], fs[i+1:]...)
		}
		fs[i].Exp = e
		return fs
	}
	return append(fs, p)
}

// Mul returns the product t*u.
func (t Term) Mul(u Term) Term {
	p := Term{Coeff: number.Round(t.Coeff.Mul(u.Coeff)), Fact: append([]Power(nil), t.Fact...)}
	for _, f := range u.Fact {
		p.Fact = merge(p.Fact, f)
	}
	sort.Stable(ByBase(p.Fact))
	return p
}

// Degree is the sum of the exponents of t.
func (t Term) Degree() decimal.Decimal {
	d := decimal.Zero
	for _, f := range t.Fact {
		d = d.Add(f.Exp)
	}
	return d
}

// Trivial indicates t is the number 1.
func (t Term) Trivial() bool {
	return t.Coeff.Equal(number.One) && len(t.Fact) == 0
}

// Node rebuilds the term as a tree.
func (t Term) Node() *tree.Node {
	if len(t.Fact) == 0 || t.Coeff.IsZero() {
		return tree.Const(t.Coeff)
	}
	var ns []*tree.Node
	if !t.Coeff.Equal(number.One) {
		ns = append(ns, tree.Const(t.Coeff))
	}
	for _, f := range t.Fact {
		ns = append(ns, f.Node())
	}
	if len(ns) == 1 {
		return ns[0]
	}
	return tree.Op(token.Multiply, ns...)
}

func (t Term) String() string {
	return t.Node().String()
}

// Quo divides t by f, which is expected to be a factor of t.
func (t Term) Quo(f Term) Term {
	q := Term{Coeff: t.Coeff}
	if c, err := number.Div(t.Coeff, f.Coeff); err == nil {
		q.Coeff = c
	}
	for _, p := range t.Fact {
		for _, g := range f.Fact {
			if p.Base.Equal(g.Base) {
				p.Exp = p.Exp.Sub(g.Exp)
				break
			}
		}
		if !p.Exp.IsZero() {
			q.Fact = append(q.Fact, p)
		}
	}
	return q
}

// GCF returns the greatest common factor of two lists of factors. A
// base is common when both lists raise it to exponents of the same
// sign; the exponent of smaller magnitude is kept.
func GCF(a, b []Power) []Power {
	var g []Power
	for _, x := range a {
		for _, y := range b {
			if !x.Base.Equal(y.Base) || x.Exp.Sign() != y.Exp.Sign() {
				continue
			}
			if x.Exp.Abs().LessThan(y.Exp.Abs()) {
				g = append(g, x)
			} else {
				g = append(g, y)
			}
			break
		}
	}
	return g
}

// gcd returns the greatest common divisor of a and b.
func gcd(a, b *big.Int) *big.Int {
	g := big.NewInt(1).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return g.Abs(g)
}

// CommonConstant finds the greatest constant dividing every value.
// Integers use their greatest common divisor. Otherwise divisors
// m/k of the smallest non-zero magnitude m are tried for k = 1, 2,
// ... in turn. No divisor is returned for fewer than two values or
// when the best divisor is 1.
func CommonConstant(cs []decimal.Decimal) (decimal.Decimal, bool) {
	if len(cs) < 2 {
		return decimal.Zero, false
	}
	ints := true
	for _, c := range cs {
		if !c.IsInteger() {
			ints = false
			break
		}
	}
	if ints {
		g := big.NewInt(0)
		for _, c := range cs {
			g = gcd(g, c.BigInt())
		}
		d := decimal.NewFromBigInt(g, 0)
		if d.IsZero() || d.Equal(number.One) {
			return decimal.Zero, false
		}
		return d, true
	}
	sorted := make([]decimal.Decimal, 0, len(cs))
	for _, c := range cs {
		if !c.IsZero() {
			sorted = append(sorted, c.Abs())
		}
	}
	if len(sorted) == 0 {
		return decimal.Zero, false
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	m := sorted[0]
	for k := int64(1); k <= maxDivisor; k++ {
		d, err := number.Div(m, decimal.NewFromInt(k))
		if err != nil || d.LessThan(number.Min) {
			break
		}
		ok := true
		for _, c := range sorted {
			if !number.Divides(c, d) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if d.Equal(number.One) {
			break
		}
		return d, true
	}
	return decimal.Zero, false
}

// Common returns the factor common to all terms: the common constant
// (or 1) times the greatest common factor of their bases.
func Common(ts ...Term) Term {
	c := Term{Coeff: number.One}
	if len(ts) == 0 {
		return c
	}
	var cs []decimal.Decimal
	for _, t := range ts {
		cs = append(cs, t.Coeff)
	}
	if d, ok := CommonConstant(cs); ok {
		c.Coeff = d
	}
	f := append([]Power(nil), ts[0].Fact...)
	for _, t := range ts[1:] {
		if f = GCF(f, t.Fact); f == nil {
			break
		}
	}
	c.Fact = f
	return c
}

// Factorize rewrites the sum n as (Σ term/f)*f where f is the factor
// common to all of its terms. It returns nil when n is not a sum of
// at least two terms, when every term is a constant or when the
// common factor is 1.
func Factorize(n *tree.Node) *tree.Node {
	if !n.Is(token.Add) || n.Len() < 2 {
		return nil
	}
	var ts []Term
	constant := true
	for _, m := range n.Operands() {
		t := Decompose(m)
		if len(t.Fact) != 0 {
			constant = false
		}
		ts = append(ts, t)
	}
	if constant {
		return nil
	}
	f := Common(ts...)
	if f.Trivial() {
		return nil
	}
	sum := tree.Op(token.Add)
	for _, t := range ts {
		sum.AddOperand(t.Quo(f).Node())
	}
	return tree.Mul(sum, f.Node())
}

// Collect merges the terms of the sum n that differ only in their
// coefficient, so 2*x+y+3*x becomes 5*x+y. It returns nil when no
// two terms are alike.
func Collect(n *tree.Node) *tree.Node {
	if !n.Is(token.Add) || n.Len() < 2 {
		return nil
	}
	type group struct {
		coeff decimal.Decimal
		fact  []Power
		count int
	}
	var (
		groups []*group
		byKey  = make(map[string]*group)
		consts []*tree.Node
		merged bool
	)
	for _, m := range n.Operands() {
		t := Decompose(m)
		if len(t.Fact) == 0 {
			consts = append(consts, m)
			continue
		}
		key := Term{Coeff: number.One, Fact: t.Fact}.Node().Key()
		if g, ok := byKey[key]; ok {
			g.coeff = g.coeff.Add(t.Coeff)
			g.count++
			merged = true
			continue
		}
		g := &group{coeff: t.Coeff, fact: t.Fact, count: 1}
		byKey[key] = g
		groups = append(groups, g)
	}
	if !merged {
		return nil
	}
	sum := tree.Op(token.Add)
	for _, g := range groups {
		sum.AddOperand(Term{Coeff: g.coeff, Fact: g.fact}.Node())
	}
	for _, m := range consts {
		sum.AddOperand(m)
	}
	if sum.Len() == 1 {
		return sum.First()
	}
	return sum
}

// Combine merges factors of the product n that share a base, so
// x*x^2 becomes x^3. It returns nil when no two factors share a base.
// A variable that no longer has a negative exponent once merged, as
// in x^2*x^(-2), is added to bounds as non-zero. bounds may be nil.
func Combine(n *tree.Node, bounds tree.Bounds) *tree.Node {
	if !n.Is(token.Multiply) {
		return nil
	}
	bases := 0
	var divisors []*tree.Node
	for _, m := range n.Operands() {
		if m.IsConst() {
			continue
		}
		bases++
		if p := AsPower(m); p.Base.IsVar() && p.Exp.IsNegative() {
			divisors = append(divisors, p.Base)
		}
	}
	t := Decompose(n)
	if len(t.Fact) >= bases {
		return nil
	}
	for _, v := range divisors {
		if bounds == nil || negated(t.Fact, v) {
			continue
		}
		bounds.Add(v.Token().Var, tree.Bound{Kind: tree.NotEqual, Value: tree.Int(0)})
	}
	return t.Node()
}

// negated indicates fs still raises base to a negative exponent.
func negated(fs []Power, base *tree.Node) bool {
	for _, f := range fs {
		if f.Base.Equal(base) {
			return f.Exp.IsNegative()
		}
	}
	return false
}
