package runtime

// coerce brings two operands to a common kind by converting the lower-ranked
// one to the higher-ranked one's kind.
func coerce(a, b Value) (Value, Value, error) {
	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == kb:
		return a, b, nil
	case ka < kb:
		conv, err := convert(a, kb)
		if err != nil {
			return nil, nil, err
		}
		return conv, b, nil
	default:
		conv, err := convert(b, ka)
		if err != nil {
			return nil, nil, err
		}
		return a, conv, nil
	}
}

func normalize(v Value) Value {
	if v == nil {
		return NilValue{}
	}
	return v
}

// Add sums numbers or concatenates strings.
func Add(a, b Value) (Value, error) {
	l, r, err := coerce(normalize(a), normalize(b))
	if err != nil {
		return nil, err
	}
	switch lv := l.(type) {
	case NumberValue:
		return NumberValue{Val: lv.Val + r.(NumberValue).Val}, nil
	case StringValue:
		return StringValue{Val: lv.Val + r.(StringValue).Val}, nil
	default:
		return nil, NewError(TypeError, "Cannot add %s.", l.Kind().plural())
	}
}

func Subtract(a, b Value) (Value, error) {
	return numericOp("subtract", a, b, func(x, y float64) float64 { return x - y })
}

func Multiply(a, b Value) (Value, error) {
	return numericOp("multiply", a, b, func(x, y float64) float64 { return x * y })
}

// Divide fails with DivisionByZero for a numeric zero divisor.
func Divide(a, b Value) (Value, error) {
	l, r, err := coerce(normalize(a), normalize(b))
	if err != nil {
		return nil, err
	}
	lv, ok := l.(NumberValue)
	if !ok {
		return nil, NewError(TypeError, "Cannot divide %s.", l.Kind().plural())
	}
	rv := r.(NumberValue)
	if rv.Val == 0 {
		return nil, NewError(DivisionByZero, "Division by zero.")
	}
	return NumberValue{Val: lv.Val / rv.Val}, nil
}

func numericOp(verb string, a, b Value, fn func(x, y float64) float64) (Value, error) {
	l, r, err := coerce(normalize(a), normalize(b))
	if err != nil {
		return nil, err
	}
	lv, ok := l.(NumberValue)
	if !ok {
		return nil, NewError(TypeError, "Cannot %s %s.", verb, l.Kind().plural())
	}
	return NumberValue{Val: fn(lv.Val, r.(NumberValue).Val)}, nil
}

// compare returns -1, 0 or 1. Only numbers and strings are ordered.
func compare(a, b Value) (int, error) {
	l, r, err := coerce(normalize(a), normalize(b))
	if err != nil {
		return 0, err
	}
	switch lv := l.(type) {
	case NumberValue:
		rv := r.(NumberValue).Val
		switch {
		case lv.Val < rv:
			return -1, nil
		case lv.Val > rv:
			return 1, nil
		case lv.Val == rv:
			return 0, nil
		default:
			return 0, errUnordered
		}
	case StringValue:
		rv := r.(StringValue).Val
		switch {
		case lv.Val < rv:
			return -1, nil
		case lv.Val > rv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, NewError(TypeError, "Cannot compare %s.", l.Kind().plural())
	}
}

// errUnordered marks a NaN comparison; every relational operator is false.
var errUnordered = NewError(TypeError, "unordered")

func relational(a, b Value, accept func(int) bool) (Value, error) {
	c, err := compare(a, b)
	if err == errUnordered {
		return BoolValue{Val: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return BoolValue{Val: accept(c)}, nil
}

func Less(a, b Value) (Value, error) {
	return relational(a, b, func(c int) bool { return c < 0 })
}

func LessEqual(a, b Value) (Value, error) {
	return relational(a, b, func(c int) bool { return c <= 0 })
}

func Greater(a, b Value) (Value, error) {
	return relational(a, b, func(c int) bool { return c > 0 })
}

func GreaterEqual(a, b Value) (Value, error) {
	return relational(a, b, func(c int) bool { return c >= 0 })
}

// Equal never equates nil with a non-nil value. Objects compare by identity
// and are never equal to a scalar.
func Equal(a, b Value) bool {
	a, b = normalize(a), normalize(b)
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka == KindNil || kb == KindNil || ka.IsObject() || kb.IsObject() {
			return false
		}
		l, r, err := coerce(a, b)
		if err != nil {
			return false
		}
		a, b = l, r
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	default:
		return a == b
	}
}

// Negate implements unary minus.
func Negate(v Value) (Value, error) {
	n, ok := normalize(v).(NumberValue)
	if !ok {
		return nil, NewError(TypeError, "Operand must be a number.")
	}
	return NumberValue{Val: -n.Val}, nil
}

// Not implements logical negation over truthiness.
func Not(v Value) Value {
	return BoolValue{Val: !Truthy(v)}
}
