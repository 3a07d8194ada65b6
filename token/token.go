// Package token defines the atoms of an expression: constants,
// variables and operators.
package token

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Kind selects which field of a Token is meaningful.
type Kind int

const (
	Constant Kind = iota
	Variable
	Operator
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Variable:
		return "variable"
	case Operator:
		return "operator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is an operator.
type Op int

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
	Pow
	Root
	LParen
	RParen
)

// Info is the static metadata of an operator.
type Info struct {
	// Arity is the number of operands the operator consumes while
	// parsing.
	Arity int
	// Precedence orders evaluation, higher binds tighter.
	Precedence int
	// Orderless operators are commutative; their operands are
	// kept by kind rather than by position.
	Orderless bool
}

var infos = [...]Info{
	Add:      {Arity: 2, Precedence: 1, Orderless: true},
	Subtract: {Arity: 2, Precedence: 1},
	Multiply: {Arity: 2, Precedence: 2, Orderless: true},
	Divide:   {Arity: 2, Precedence: 2},
	Pow:      {Arity: 2, Precedence: 3},
	Root:     {Arity: 2, Precedence: 3},
	LParen:   {},
	RParen:   {},
}

// Info returns the metadata of o. Parentheses have zero arity and
// precedence.
func (o Op) Info() Info {
	if o < 0 || int(o) >= len(infos) {
		return Info{}
	}
	return infos[o]
}

// IsParen is true for LParen and RParen.
func (o Op) IsParen() bool {
	return o == LParen || o == RParen
}

// Inverse returns the operator that undoes o.
func (o Op) Inverse() Op {
	switch o {
	case Add:
		return Subtract
	case Subtract:
		return Add
	case Multiply:
		return Divide
	case Divide:
		return Multiply
	case Pow:
		return Root
	case Root:
		return Pow
	}
	panic(fmt.Sprintf("token: %v has no inverse", o))
}

func (o Op) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Pow:
		return "^"
	case Root:
		return "root"
	case LParen:
		return "("
	case RParen:
		return ")"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// OpFromRune maps an operator symbol to its Op.
func OpFromRune(r rune) (Op, bool) {
	switch r {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	case '^':
		return Pow, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	}
	return 0, false
}

// Token is a tagged union. Only the field selected by Kind is
// meaningful.
type Token struct {
	Kind  Kind
	Const decimal.Decimal
	Var   string
	Op    Op
}

// C makes a constant token.
func C(d decimal.Decimal) Token {
	return Token{Kind: Constant, Const: d}
}

// Int makes an integer constant token.
func Int(n int64) Token {
	return C(decimal.NewFromInt(n))
}

// V makes a variable token. The name is interned.
func V(name string) Token {
	return Token{Kind: Variable, Var: Intern(name)}
}

// O makes an operator token.
func O(op Op) Token {
	return Token{Kind: Operator, Op: op}
}

// IsConst, IsVar and IsOp test the kind of t.
func (t Token) IsConst() bool { return t.Kind == Constant }
func (t Token) IsVar() bool   { return t.Kind == Variable }
func (t Token) IsOp() bool    { return t.Kind == Operator }

// Is confirms t is the operator op.
func (t Token) Is(op Op) bool {
	return t.Kind == Operator && t.Op == op
}

// Orderless reports whether t is a commutative operator.
func (t Token) Orderless() bool {
	return t.Kind == Operator && t.Op.Info().Orderless
}

// Equal compares two tokens. Constants compare by value, so 2 and
// 2.0 are the same token.
func (t Token) Equal(u Token) bool {
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case Constant:
		return t.Const.Equal(u.Const)
	case Variable:
		return t.Var == u.Var
	default:
		return t.Op == u.Op
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Constant:
		return t.Const.String()
	case Variable:
		return t.Var
	default:
		return t.Op.String()
	}
}

var interned = struct {
	sync.Mutex
	names map[string]string
}{names: make(map[string]string)}

// Intern returns the canonical copy of name so that every variable of
// the same name shares one backing string.
func Intern(name string) string {
	interned.Lock()
	defer interned.Unlock()
	if s, ok := interned.names[name]; ok {
		return s
	}
	interned.names[name] = name
	return name
}
