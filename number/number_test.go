package number

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPow(t *testing.T) {
	vs := []struct {
		a, b string
		want string
		err  error
	}{
		{a: "2", b: "3", want: "8"},
		{a: "2", b: "0", want: "1"},
		{a: "-2", b: "-2", want: "0.25"},
		{a: "-3", b: "3", want: "-27"},
		{a: "9", b: "0.5", want: "3"},
		{a: "1", b: "100000000", want: "1"},
		{a: "-1", b: "100000001", want: "-1"},
		{a: "0", b: "5", want: "0"},
		{a: "0", b: "-1", err: ErrDivideByZero},
		{a: "-40", b: "-40", err: ErrOverflow},
		{a: "10", b: "40", err: ErrOverflow},
		{a: "-4", b: "0.5", err: ErrUndefined},
		{a: "0.5", b: "90", want: "0.0000000000000000000000000008"},
		{a: "1.0001", b: "65536"},
	}
	for i, v := range vs {
		got, err := Pow(d(v.a), d(v.b))
		if v.err != nil {
			if !errors.Is(err, v.err) {
				t.Errorf("[%d] %s^%s got err=%v want=%v", i, v.a, v.b, err, v.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] %s^%s unexpected error: %v", i, v.a, v.b, err)
			continue
		}
		if -got.Exponent() > Scale {
			t.Errorf("[%d] %s^%s kept %d digits", i, v.a, v.b, -got.Exponent())
		}
		if v.want == "" {
			continue
		}
		if !got.Equal(d(v.want)) {
			t.Errorf("[%d] %s^%s got=%s want=%s", i, v.a, v.b, got, v.want)
		}
	}
}

func TestArith(t *testing.T) {
	eps := "1.0000000000000000000000000001"
	vs := []struct {
		op   func(a, b decimal.Decimal) (decimal.Decimal, error)
		a, b string
		want string
		err  error
	}{
		{op: Mul, a: eps, b: eps, want: "1.0000000000000000000000000002"},
		{op: Mul, a: "0.0000000000000000000000000001", b: "0.5", want: "0.0000000000000000000000000001"},
		{op: Mul, a: "0.000000000000001", b: "0.000000000000001", want: "0"},
		{op: Mul, a: "10000000000000000000", b: "10000000000000000000", err: ErrOverflow},
		{op: Add, a: "0.1", b: "0.2", want: "0.3"},
		{op: Add, a: "79228162514264337593543950335", b: "1", err: ErrOverflow},
		{op: Sub, a: eps, b: "1", want: "0.0000000000000000000000000001"},
	}
	for i, v := range vs {
		got, err := v.op(d(v.a), d(v.b))
		if v.err != nil {
			if !errors.Is(err, v.err) {
				t.Errorf("[%d] got err=%v want=%v", i, err, v.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] unexpected error: %v", i, err)
			continue
		}
		if got.String() != v.want {
			t.Errorf("[%d] got=%s want=%s", i, got, v.want)
		}
	}
}

func TestRoot(t *testing.T) {
	vs := []struct {
		a, n string
		want string
		err  error
	}{
		{a: "9", n: "2", want: "3"},
		{a: "-8", n: "3", want: "-2"},
		{a: "8", n: "3", want: "2"},
		{a: "-4", n: "2", err: ErrUndefined},
		{a: "4", n: "0", err: ErrDivideByZero},
	}
	for i, v := range vs {
		got, err := Root(d(v.a), d(v.n))
		if v.err != nil {
			if !errors.Is(err, v.err) {
				t.Errorf("[%d] root(%s, %s) got err=%v want=%v", i, v.a, v.n, err, v.err)
			}
			continue
		}
		if err != nil || !got.Equal(d(v.want)) {
			t.Errorf("[%d] root(%s, %s) got=%s, %v want=%s", i, v.a, v.n, got, err, v.want)
		}
	}
}

func TestDiv(t *testing.T) {
	if _, err := Div(One, Zero); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("1/0 got err=%v", err)
	}
	q, err := Div(d("1"), d("4"))
	if err != nil || !q.Equal(d("0.25")) {
		t.Errorf("1/4 got=%s, %v", q, err)
	}
	q, _ = Div(d("1"), d("3"))
	if q.Exponent() != -Scale {
		t.Errorf("1/3 kept %d digits, want %d", -q.Exponent(), Scale)
	}
}

func TestDivides(t *testing.T) {
	vs := []struct {
		d, by string
		ok    bool
	}{
		{"8", "4", true},
		{"8", "0.5", true},
		{"4.5", "1.5", true},
		{"4", "1.5", false},
		{"3", "0", false},
	}
	for i, v := range vs {
		if got := Divides(d(v.d), d(v.by)); got != v.ok {
			t.Errorf("[%d] %s|%s got=%v want=%v", i, v.by, v.d, got, v.ok)
		}
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("1.2.3"); !errors.Is(err, ErrSyntax) {
		t.Errorf("got err=%v, want ErrSyntax", err)
	}
	if v, err := Parse("2.50"); err != nil || !v.Equal(d("2.5")) {
		t.Errorf("got=%v, %v", v, err)
	}
}
