// Package number holds the fixed scale decimal arithmetic used while
// rewriting expressions.
package number

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept by every result.
const Scale = 28

// maxExp bounds the magnitude of an integer exponent. Anything larger
// overflows unless the base is 0, 1 or -1.
const maxExp = 1 << 16

var (
	// ErrOverflow indicates a result that is not representable.
	ErrOverflow = errors.New("overflow")
	// ErrDivideByZero indicates a division by the constant zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrSyntax indicates a malformed decimal literal.
	ErrSyntax = errors.New("invalid decimal")
	// ErrUndefined indicates a result with no real value, such as an
	// even root of a negative number.
	ErrUndefined = errors.New("undefined")
)

var (
	Zero     = decimal.Zero
	One      = decimal.NewFromInt(1)
	Two      = decimal.NewFromInt(2)
	MinusOne = decimal.NewFromInt(-1)

	// Max is the largest representable magnitude (96 bits of mantissa).
	Max = decimal.RequireFromString("79228162514264337593543950335")
	// Min is the smallest representable non-zero magnitude.
	Min = decimal.New(1, -Scale)
)

// Parse converts a literal such as "12" or "0.25" into a decimal.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	return d, nil
}

// Check confirms d fits the fixed scale representation.
func Check(d decimal.Decimal) error {
	a := d.Abs()
	if a.GreaterThan(Max) {
		return ErrOverflow
	}
	if !a.IsZero() && a.LessThan(Min) {
		return ErrOverflow
	}
	return nil
}

// Round rounds d to Scale fractional digits.
func Round(d decimal.Decimal) decimal.Decimal {
	if d.Exponent() >= -Scale {
		return d
	}
	return d.Round(Scale)
}

func result(d decimal.Decimal) (decimal.Decimal, error) {
	d = Round(d)
	if err := Check(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Add computes a+b rounded to Scale digits.
func Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	return result(a.Add(b))
}

// Sub computes a-b rounded to Scale digits.
func Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	return result(a.Sub(b))
}

// Mul computes a*b rounded to Scale digits.
func Mul(a, b decimal.Decimal) (decimal.Decimal, error) {
	return result(a.Mul(b))
}

// Div computes a/b rounded to Scale digits.
func Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	return a.DivRound(b, Scale), nil
}

// Divides indicates that d is an exact multiple of by.
func Divides(d, by decimal.Decimal) bool {
	if by.IsZero() {
		return false
	}
	return d.Mod(by).IsZero()
}

// Pow computes a^b. Integer exponents are computed by repeated
// squaring, rounding every step to Scale digits and failing with
// ErrOverflow as soon as an intermediate value leaves the
// representable range. Other exponents go through float64 and are
// rounded back to Scale digits.
func Pow(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return One, nil
	}
	if a.IsZero() {
		if b.IsNegative() {
			return decimal.Zero, ErrDivideByZero
		}
		return decimal.Zero, nil
	}
	if !b.IsInteger() {
		if a.IsNegative() {
			return decimal.Zero, ErrUndefined
		}
		r := math.Pow(a.InexactFloat64(), b.InexactFloat64())
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return decimal.Zero, ErrOverflow
		}
		d := decimal.NewFromFloat(r).Round(Scale)
		return d, Check(d)
	}
	if a.Equal(One) {
		return One, nil
	}
	if a.Equal(MinusOne) {
		if b.Mod(Two).IsZero() {
			return One, nil
		}
		return MinusOne, nil
	}
	if b.Abs().GreaterThan(decimal.NewFromInt(maxExp)) {
		return decimal.Zero, ErrOverflow
	}
	n := b.IntPart()
	neg := n < 0
	if neg {
		n = -n
	}
	r := One
	x := a
	for {
		if n&1 == 1 {
			r = Round(r.Mul(x))
			if r.Abs().GreaterThan(Max) {
				return decimal.Zero, ErrOverflow
			}
		}
		n >>= 1
		if n == 0 {
			break
		}
		x = Round(x.Mul(x))
		if x.Abs().GreaterThan(Max) {
			return decimal.Zero, ErrOverflow
		}
	}
	if neg {
		q, err := Div(One, r)
		if err != nil {
			return decimal.Zero, err
		}
		r = q
	}
	return r, Check(r)
}

// Root computes the n-th root of a. Odd integer roots of negative
// values are negative, other roots of negative values are undefined.
func Root(a, n decimal.Decimal) (decimal.Decimal, error) {
	inv, err := Div(One, n)
	if err != nil {
		return decimal.Zero, err
	}
	if a.IsNegative() && n.IsInteger() && !n.Mod(Two).IsZero() {
		r, err := Pow(a.Neg(), inv)
		if err != nil {
			return decimal.Zero, err
		}
		return r.Neg(), nil
	}
	return Pow(a, inv)
}

// Float converts d to the nearest float64.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
