// Package lexer converts expression text into tokens.
package lexer

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"zappem.net/pub/math/algebrars/number"
	"zappem.net/pub/math/algebrars/token"
)

// ErrInvalidChar is returned for text that is not whitespace, a
// number, a name or an operator symbol.
var ErrInvalidChar = errors.New("invalid character")

var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `\p{L}[\p{L}\p{N}]*`},
	{Name: "Operator", Pattern: `[-+*/^()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var (
	symbols    = definition.Symbols()
	numberType = symbols["Number"]
	identType  = symbols["Ident"]
	opType     = symbols["Operator"]
)

// Lex splits text into tokens. Digit runs become constants, names
// become (interned) variables and single symbols become operators.
func Lex(text string) ([]token.Token, error) {
	lex, err := definition.LexString("", text)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidChar)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidChar)
	}
	var toks []token.Token
	for _, r := range raw {
		switch r.Type {
		case numberType:
			d, err := number.Parse(r.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.Pos, err)
			}
			toks = append(toks, token.C(d))
		case identType:
			toks = append(toks, token.V(r.Value))
		case opType:
			op, _ := token.OpFromRune([]rune(r.Value)[0])
			toks = append(toks, token.O(op))
		}
	}
	return toks, nil
}
