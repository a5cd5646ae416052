package runtime

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category. The declaration order is the
// coercion rank: when two operands differ, the lower kind converts to the
// higher one.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindCallable
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindCallable:
		return "callable"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// plural is used in operator error messages ("Cannot add bools.").
func (k Kind) plural() string {
	if k == KindNil {
		return "nil"
	}
	return k.String() + "s"
}

// IsObject reports whether values of this kind are shared references.
func (k Kind) IsObject() bool {
	return k >= KindCallable
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Callable is implemented by every value that can appear in call position
// and report an arity. Classes are callable too but keep their own kind.
type Callable interface {
	Value
	Arity() int
}

// FunctionValue is a closure: a declaration paired with the environment that
// was current when it was declared.
type FunctionValue struct {
	Declaration   *ast.FunctionDeclaration
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.FunctionDeclaration, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (v *FunctionValue) Kind() Kind { return KindCallable }

func (v *FunctionValue) Arity() int {
	if v == nil || v.Declaration == nil {
		return 0
	}
	return v.Declaration.Arity()
}

// Name returns the declared function name.
func (v *FunctionValue) Name() string {
	if v == nil || v.Declaration == nil {
		return ""
	}
	return v.Declaration.Name.Lexeme
}

// Bind returns a copy of the method whose closure is a fresh scope nested in
// the original closure. The scope binds `this` when instance is non-nil.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	if instance != nil {
		env.Define("this", instance)
	}
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a host function exposed to programs.
type NativeFunctionValue struct {
	Name string
	Argc int
	Impl NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindCallable }

func (v *NativeFunctionValue) Arity() int { return v.Argc }

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
	Fields     map[string]Value
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{Name: name, Superclass: superclass, Methods: methods, Fields: make(map[string]Value)}
}

func (v *ClassValue) Kind() Kind { return KindClass }

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

//-----------------------------------------------------------------------------
// Conversions
//-----------------------------------------------------------------------------

// Truthy maps a value to a boolean: only nil and false are falsy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Stringify renders a value the way `print` shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", val.Name())
	case *NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name)
	case *ClassValue:
		return val.Name
	case *InstanceValue:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

// FormatNumber prints up to 15 significant digits, dropping trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', 15, 64)
}

// AsNumber views a scalar as a number.
func AsNumber(v Value) (float64, error) {
	switch val := v.(type) {
	case nil, NilValue:
		return 0, nil
	case BoolValue:
		if val.Val {
			return 1, nil
		}
		return 0, nil
	case NumberValue:
		return val.Val, nil
	case StringValue:
		n, err := strconv.ParseFloat(val.Val, 64)
		if err != nil {
			return 0, NewError(TypeError, "Cannot convert string %q to number.", val.Val)
		}
		return n, nil
	default:
		return 0, NewError(TypeError, "Cannot convert %s to number.", v.Kind())
	}
}

// convert produces v viewed as kind target. Only scalar targets are
// reachable; nothing converts into an object kind.
func convert(v Value, target Kind) (Value, error) {
	if v.Kind() == target {
		return v, nil
	}
	switch target {
	case KindBool:
		return BoolValue{Val: Truthy(v)}, nil
	case KindNumber:
		n, err := AsNumber(v)
		if err != nil {
			return nil, err
		}
		return NumberValue{Val: n}, nil
	case KindString:
		return StringValue{Val: Stringify(v)}, nil
	case KindNil:
		return NilValue{}, nil
	default:
		return nil, NewError(TypeError, "Cannot convert %s to %s.", v.Kind(), target)
	}
}
