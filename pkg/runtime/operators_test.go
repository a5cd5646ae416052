package runtime

import (
	"errors"
	"math"
	"testing"
)

func num(v float64) NumberValue { return NumberValue{Val: v} }
func str(v string) StringValue  { return StringValue{Val: v} }
func boolean(v bool) BoolValue  { return BoolValue{Val: v} }

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil error", kind)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if rtErr.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, rtErr.Kind, rtErr.Message)
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		val  Value
		want bool
	}{
		{NilValue{}, false},
		{nil, false},
		{boolean(false), false},
		{boolean(true), true},
		{num(0), true},
		{str(""), true},
		{NewInstance(NewClass("A", nil, nil)), true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.val); got != tc.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", tc.val, got, tc.want)
		}
	}
}

func TestStringifyNumbers(t *testing.T) {
	cases := map[float64]string{
		3:         "3",
		-2.5:      "-2.5",
		0.1 + 0.2: "0.3",
		100:       "100",
		1e21:      "1e+21",
		1.0 / 3.0: "0.333333333333333",
	}
	for in, want := range cases {
		if got := Stringify(num(in)); got != want {
			t.Fatalf("Stringify(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestStringifyObjects(t *testing.T) {
	class := NewClass("Point", nil, nil)
	if got := Stringify(class); got != "Point" {
		t.Fatalf("unexpected class string %q", got)
	}
	if got := Stringify(NewInstance(class)); got != "Point instance" {
		t.Fatalf("unexpected instance string %q", got)
	}
	native := &NativeFunctionValue{Name: "clock"}
	if got := Stringify(native); got != "<native fn clock>" {
		t.Fatalf("unexpected native string %q", got)
	}
	if got := Stringify(NilValue{}); got != "nil" {
		t.Fatalf("unexpected nil string %q", got)
	}
}

func TestAddSameKind(t *testing.T) {
	val, err := Add(num(1), num(2))
	if err != nil || val != num(3) {
		t.Fatalf("expected 3, got %#v (%v)", val, err)
	}
	val, err = Add(str("foo"), str("bar"))
	if err != nil || val != str("foobar") {
		t.Fatalf("expected foobar, got %#v (%v)", val, err)
	}
	_, err = Add(boolean(true), boolean(false))
	requireKind(t, err, TypeError)
	_, err = Add(NilValue{}, NilValue{})
	requireKind(t, err, TypeError)
}

func TestAddCoercesLowerRankedOperand(t *testing.T) {
	cases := []struct {
		left, right Value
		want        Value
	}{
		{num(1), str("a"), str("1a")},
		{str("a"), num(1), str("a1")},
		{boolean(true), num(1), num(2)},
		{NilValue{}, num(4), num(4)},
		{boolean(false), str("!"), str("false!")},
		{NilValue{}, str("x"), str("nilx")},
	}
	for _, tc := range cases {
		got, err := Add(tc.left, tc.right)
		if err != nil {
			t.Fatalf("Add(%#v, %#v) failed: %v", tc.left, tc.right, err)
		}
		if got != tc.want {
			t.Fatalf("Add(%#v, %#v) = %#v, want %#v", tc.left, tc.right, got, tc.want)
		}
	}
}

func TestArithmeticRejectsStrings(t *testing.T) {
	_, err := Subtract(str("a"), num(1))
	requireKind(t, err, TypeError)
	_, err = Multiply(num(2), str("3"))
	requireKind(t, err, TypeError)
}

func TestArithmeticNumbers(t *testing.T) {
	if v, err := Subtract(num(5), num(3)); err != nil || v != num(2) {
		t.Fatalf("expected 2, got %#v (%v)", v, err)
	}
	if v, err := Multiply(num(4), boolean(true)); err != nil || v != num(4) {
		t.Fatalf("expected 4, got %#v (%v)", v, err)
	}
	if v, err := Divide(num(9), num(3)); err != nil || v != num(3) {
		t.Fatalf("expected 3, got %#v (%v)", v, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := Divide(num(1), num(0))
	requireKind(t, err, DivisionByZero)
	_, err = Divide(num(1), boolean(false))
	requireKind(t, err, DivisionByZero)
}

func TestDivideStringByZeroIsTypeError(t *testing.T) {
	_, err := Divide(str("1"), num(0))
	requireKind(t, err, TypeError)
	if err.Error() != "Cannot divide strings." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestOrdering(t *testing.T) {
	check := func(fn func(a, b Value) (Value, error), a, b Value, want bool) {
		t.Helper()
		got, err := fn(a, b)
		if err != nil {
			t.Fatalf("comparison failed: %v", err)
		}
		if got != boolean(want) {
			t.Fatalf("expected %v, got %#v", want, got)
		}
	}
	check(Less, num(1), num(2), true)
	check(LessEqual, num(2), num(2), true)
	check(Greater, num(1), num(2), false)
	check(GreaterEqual, num(3), num(2), true)
	check(Less, str("apple"), str("banana"), true)
	// 10 becomes "10", which sorts before "9".
	check(Less, num(10), str("9"), true)
	check(Less, num(math.NaN()), num(1), false)
	check(GreaterEqual, num(math.NaN()), num(1), false)

	_, err := Less(boolean(true), boolean(false))
	requireKind(t, err, TypeError)
	_, err = Less(NilValue{}, NilValue{})
	requireKind(t, err, TypeError)
	_, err = Less(num(1), NewClass("A", nil, nil))
	requireKind(t, err, TypeError)
}

func TestEquality(t *testing.T) {
	class := NewClass("A", nil, nil)
	a := NewInstance(class)
	b := NewInstance(class)
	cases := []struct {
		left, right Value
		want        bool
	}{
		{NilValue{}, NilValue{}, true},
		{NilValue{}, boolean(false), false},
		{num(0), NilValue{}, false},
		{num(1), num(1), true},
		{num(1), str("1"), true},
		{boolean(true), num(1), true},
		{boolean(true), str("true"), true},
		{str("a"), str("b"), false},
		{a, a, true},
		{a, b, false},
		{class, class, true},
		{num(1), a, false},
	}
	for _, tc := range cases {
		if got := Equal(tc.left, tc.right); got != tc.want {
			t.Fatalf("Equal(%#v, %#v) = %v, want %v", tc.left, tc.right, got, tc.want)
		}
	}
}

func TestUnaryOperators(t *testing.T) {
	if v, err := Negate(num(2)); err != nil || v != num(-2) {
		t.Fatalf("expected -2, got %#v (%v)", v, err)
	}
	_, err := Negate(str("2"))
	requireKind(t, err, TypeError)
	if v := Not(num(0)); v != boolean(false) {
		t.Fatalf("expected !0 to be false, got %#v", v)
	}
	if v := Not(NilValue{}); v != boolean(true) {
		t.Fatalf("expected !nil to be true, got %#v", v)
	}
}

func TestAsNumber(t *testing.T) {
	if n, err := AsNumber(str("2.5")); err != nil || n != 2.5 {
		t.Fatalf("expected 2.5, got %v (%v)", n, err)
	}
	_, err := AsNumber(str("abc"))
	requireKind(t, err, TypeError)
	if n, _ := AsNumber(boolean(true)); n != 1 {
		t.Fatalf("expected true to convert to 1, got %v", n)
	}
}
