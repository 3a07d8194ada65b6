package tree

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"zappem.net/pub/math/algebrars/token"
)

// InstrKind selects what an Instr does.
type InstrKind int

const (
	// Push pushes Value.
	Push InstrKind = iota
	// Load pushes the value held in slot Slot.
	Load
	// Apply pops two values and pushes the result of Op.
	Apply
)

// Instr is one postfix instruction.
type Instr struct {
	Kind  InstrKind
	Value decimal.Decimal
	Slot  int
	Op    token.Op
}

func (in Instr) String() string {
	switch in.Kind {
	case Push:
		return "push " + in.Value.String()
	case Load:
		return fmt.Sprintf("load %d", in.Slot)
	case Apply:
		return in.Op.String()
	}
	return fmt.Sprintf("Instr(%d)", int(in.Kind))
}

// Program is a flattened tree. Slots maps each variable name to the
// slot it is loaded from; Names is the inverse. Depth is the largest
// stack the program needs.
type Program struct {
	Code  []Instr
	Slots map[string]int
	Names []string
	Depth int
}

func (p *Program) String() string {
	var s []string
	for _, in := range p.Code {
		s = append(s, in.String())
	}
	return strings.Join(s, "; ")
}

// Flatten converts n into a postfix program. An operator with k
// operands applies its operator k-1 times, left to right in
// calculation order.
func Flatten(n *Node) *Program {
	p := &Program{Slots: make(map[string]int)}
	depth := 0
	p.flatten(n, &depth)
	return p
}

func (p *Program) push(in Instr, depth *int, delta int) {
	p.Code = append(p.Code, in)
	*depth += delta
	if *depth > p.Depth {
		p.Depth = *depth
	}
}

func (p *Program) flatten(n *Node, depth *int) {
	switch n.tok.Kind {
	case token.Constant:
		p.push(Instr{Kind: Push, Value: n.tok.Const}, depth, 1)
	case token.Variable:
		slot, ok := p.Slots[n.tok.Var]
		if !ok {
			slot = len(p.Names)
			p.Slots[n.tok.Var] = slot
			p.Names = append(p.Names, n.tok.Var)
		}
		p.push(Instr{Kind: Load, Slot: slot}, depth, 1)
	default:
		for i, c := range n.Operands() {
			p.flatten(c, depth)
			if i > 0 {
				p.push(Instr{Kind: Apply, Op: n.tok.Op}, depth, -1)
			}
		}
	}
}
