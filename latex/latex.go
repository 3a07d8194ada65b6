// Package latex typesets expression trees as LaTeX math.
package latex

import (
	"strings"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

var symbols = map[string]string{
	"pi": `\pi`,
	"π":  `\pi`,
}

// String renders n as LaTeX. Sums lead with their positive terms and
// show negative terms as subtractions. Products lead with their
// coefficient.
func String(n *tree.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n *tree.Node) {
	tok := n.Token()
	switch tok.Kind {
	case token.Constant:
		b.WriteString(tok.Const.String())
		return
	case token.Variable:
		if s, ok := symbols[tok.Var]; ok {
			b.WriteString(s)
		} else {
			b.WriteString(tok.Var)
		}
		return
	}
	ops := n.Display()
	if len(ops) == 1 {
		write(b, ops[0])
		return
	}
	switch tok.Op {
	case token.Add:
		for i, c := range positiveFirst(ops) {
			neg, abs := negated(c)
			switch {
			case neg && i == 0:
				b.WriteString("-")
			case neg:
				b.WriteString(" - ")
			case i > 0:
				b.WriteString(" + ")
			}
			if neg && abs.Is(token.Add) {
				paren(b, abs)
			} else {
				write(b, abs)
			}
		}
	case token.Subtract:
		for i, c := range ops {
			if i > 0 {
				b.WriteString(" - ")
			}
			if i > 0 && (c.Is(token.Add) || c.Is(token.Subtract) || negative(c)) {
				paren(b, c)
			} else {
				write(b, c)
			}
		}
	case token.Multiply:
		if ops[0].IsConstValue(number.MinusOne) {
			b.WriteString("-")
			ops = ops[1:]
		}
		for i, c := range ops {
			if i > 0 {
				b.WriteString(` \cdot `)
			}
			if c.Is(token.Add) || c.Is(token.Subtract) || (i > 0 && negative(c)) {
				paren(b, c)
			} else {
				write(b, c)
			}
		}
	case token.Divide:
		b.WriteString(`\frac{`)
		write(b, ops[0])
		for _, c := range ops[1:] {
			b.WriteString("}{")
			write(b, c)
		}
		b.WriteString("}")
	case token.Pow:
		base := ops[0]
		if base.Token().IsOp() || negative(base) {
			paren(b, base)
		} else {
			write(b, base)
		}
		for _, c := range ops[1:] {
			b.WriteString("^{")
			write(b, c)
			b.WriteString("}")
		}
	case token.Root:
		if ops[1].IsConstValue(number.Two) {
			b.WriteString(`\sqrt{`)
		} else {
			b.WriteString(`\sqrt[`)
			write(b, ops[1])
			b.WriteString("]{")
		}
		write(b, ops[0])
		b.WriteString("}")
	}
}

// positiveFirst moves the terms of a sum that render as subtractions
// after the others, keeping the order within each group.
func positiveFirst(ops []*tree.Node) []*tree.Node {
	var pos, neg []*tree.Node
	for _, c := range ops {
		if ok, _ := negated(c); ok {
			neg = append(neg, c)
		} else {
			pos = append(pos, c)
		}
	}
	return append(pos, neg...)
}

func paren(b *strings.Builder, n *tree.Node) {
	b.WriteString(`\left(`)
	write(b, n)
	b.WriteString(`\right)`)
}

func negative(n *tree.Node) bool {
	return n.IsConst() && n.Token().Const.IsNegative()
}

// negated reports whether n is a negative constant or a product with
// a negative coefficient, returning the magnitude.
func negated(n *tree.Node) (bool, *tree.Node) {
	if negative(n) {
		return true, tree.Const(n.Token().Const.Neg())
	}
	if !n.Is(token.Multiply) {
		return false, n
	}
	ops := n.Display()
	if !negative(ops[0]) {
		return false, n
	}
	c := ops[0].Token().Const.Neg()
	rest := ops[1:]
	if !c.Equal(number.One) {
		rest = append([]*tree.Node{tree.Const(c)}, rest...)
	}
	if len(rest) == 1 {
		return true, rest[0]
	}
	return true, tree.Op(token.Multiply, rest...)
}
