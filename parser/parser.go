// Package parser builds canonical expression trees from text.
//
// Parsing runs in two steps: the token stream is converted to postfix
// order with a shunting-yard pass, then the postfix stream is folded
// into a tree. Leading signs are handled by inserting a zero operand,
// so "-x" parses as "0-x".
package parser

import (
	"errors"
	"fmt"

	"zappem.net/pub/math/algebrars/lexer"
	"zappem.net/pub/math/algebrars/token"
	"zappem.net/pub/math/algebrars/tree"
)

var (
	// ErrMissingOperand indicates an operator without enough operands.
	ErrMissingOperand = errors.New("missing operand")
	// ErrParenthesesMismatch indicates unbalanced parentheses.
	ErrParenthesesMismatch = errors.New("parentheses mismatch")
	// ErrMissingOperator indicates operands with no operator
	// joining them, as in "2 3".
	ErrMissingOperator = errors.New("missing operator")
)

// unary inserts a zero before every sign that opens the input or
// follows an opening parenthesis.
func unary(toks []token.Token) []token.Token {
	var out []token.Token
	for i, t := range toks {
		if (t.Is(token.Add) || t.Is(token.Subtract)) && (i == 0 || toks[i-1].Is(token.LParen)) {
			out = append(out, token.Int(0))
		}
		out = append(out, t)
	}
	return out
}

// Postfix converts infix tokens into postfix order. Operators of
// equal precedence associate to the left.
func Postfix(toks []token.Token) ([]token.Token, error) {
	var out, stack []token.Token
	for _, t := range unary(toks) {
		switch {
		case !t.IsOp():
			out = append(out, t)
		case t.Op == token.LParen:
			stack = append(stack, t)
		case t.Op == token.RParen:
			for {
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: unexpected )", ErrParenthesesMismatch)
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Is(token.LParen) {
					break
				}
				out = append(out, top)
			}
		default:
			prec := t.Op.Info().Precedence
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Is(token.LParen) || prec > top.Op.Info().Precedence {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Is(token.LParen) {
			return nil, fmt.Errorf("%w: unclosed (", ErrParenthesesMismatch)
		}
		out = append(out, top)
	}
	return out, nil
}

// Build folds postfix tokens into a tree. Commutative operators merge
// operands carrying the same operator as they are built.
func Build(postfix []token.Token) (*tree.Node, error) {
	var stack []*tree.Node
	for _, t := range postfix {
		if !t.IsOp() {
			stack = append(stack, tree.Leaf(t))
			continue
		}
		arity := t.Op.Info().Arity
		if len(stack) < arity {
			return nil, fmt.Errorf("%w: %v needs %d, has %d", ErrMissingOperand, t, arity, len(stack))
		}
		args := stack[len(stack)-arity:]
		n := tree.New(t, args...)
		stack = append(stack[:len(stack)-arity], n)
	}
	switch len(stack) {
	case 0:
		return nil, fmt.Errorf("%w: empty expression", ErrMissingOperand)
	case 1:
		return stack[0], nil
	}
	return nil, fmt.Errorf("%w: %d operands left", ErrMissingOperator, len(stack))
}

// ParseNode parses text into the root node of an expression.
func ParseNode(text string) (*tree.Node, error) {
	toks, err := lexer.Lex(text)
	if err != nil {
		return nil, err
	}
	postfix, err := Postfix(toks)
	if err != nil {
		return nil, err
	}
	return Build(postfix)
}

// Parse parses text into a tree with no bounds.
func Parse(text string) (*tree.Tree, error) {
	root, err := ParseNode(text)
	if err != nil {
		return nil, err
	}
	return tree.NewTree(root), nil
}

// MustParse is Parse that panics on error. It is intended for tests
// and literals.
func MustParse(text string) *tree.Tree {
	t, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("parser: %q: %v", text, err))
	}
	return t
}
