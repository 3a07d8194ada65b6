package tree

import (
	"strings"

	"zappem.net/pub/math/algebrars/token"
)

// String renders n as infix text that parses back to an equivalent
// tree.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if !n.tok.IsOp() {
		b.WriteString(n.tok.String())
		return
	}
	ops := n.Display()
	if n.tok.Op == token.Root && len(ops) == 2 {
		writeOperand(b, n, ops[0], 0)
		b.WriteString("^(1/")
		writeOperand(b, n, ops[1], 1)
		b.WriteString(")")
		return
	}
	for i, c := range ops {
		if i > 0 {
			b.WriteString(n.tok.Op.String())
		}
		writeOperand(b, n, c, i)
	}
}

func writeOperand(b *strings.Builder, parent, child *Node, pos int) {
	if !needParens(parent, child, pos) {
		child.write(b)
		return
	}
	b.WriteByte('(')
	child.write(b)
	b.WriteByte(')')
}

// needParens decides whether child, the operand at pos of parent,
// must be bracketed to keep its meaning.
func needParens(parent, child *Node, pos int) bool {
	switch child.tok.Kind {
	case token.Constant:
		return child.tok.Const.IsNegative()
	case token.Variable:
		return false
	}
	if child.ops.Len() < 2 {
		return false
	}
	pp := parent.tok.Op.Info().Precedence
	cp := child.tok.Op.Info().Precedence
	switch {
	case cp < pp:
		return true
	case cp > pp:
		return false
	}
	if child.tok.Op == token.Root {
		return true
	}
	if parent.tok.Orderless() && child.tok.Op == parent.tok.Op {
		return false
	}
	return pos > 0 || parent.tok.Is(token.Pow)
}
