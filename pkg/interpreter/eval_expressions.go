package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluate(node ast.Expr) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Grouping:
		return i.evaluate(n.Expression)
	case *ast.Unary:
		return i.evaluateUnary(n)
	case *ast.Binary:
		return i.evaluateBinary(n)
	case *ast.Logical:
		return i.evaluateLogical(n)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n)
	case *ast.Assign:
		return i.evaluateAssign(n)
	case *ast.Call:
		return i.evaluateCall(n)
	case *ast.Get:
		return i.evaluateGet(n)
	case *ast.Set:
		return i.evaluateSet(n)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n)
	case *ast.Super:
		return i.evaluateSuper(n)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", node)
	}
}

// atLine attaches a source line to a runtime error that does not have one yet.
func atLine(err error, line int) error {
	var rtErr *runtime.RuntimeError
	if errors.As(err, &rtErr) {
		rtErr.AtLine(line)
	}
	return err
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary) (runtime.Value, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Bang:
		return runtime.Not(right), nil
	case token.Minus:
		val, err := runtime.Negate(right)
		if err != nil {
			return nil, atLine(err, expr.Operator.Line)
		}
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator.Lexeme)
	}
}

var binaryOperators = map[token.Kind]func(a, b runtime.Value) (runtime.Value, error){
	token.Plus:         runtime.Add,
	token.Minus:        runtime.Subtract,
	token.Star:         runtime.Multiply,
	token.Slash:        runtime.Divide,
	token.Less:         runtime.Less,
	token.LessEqual:    runtime.LessEqual,
	token.Greater:      runtime.Greater,
	token.GreaterEqual: runtime.GreaterEqual,
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	}
	op, ok := binaryOperators[expr.Operator.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator.Lexeme)
	}
	val, err := op(left, right)
	if err != nil {
		return nil, atLine(err, expr.Operator.Line)
	}
	return val, nil
}

// evaluateLogical short-circuits and yields the deciding operand itself,
// not a boolean.
func (i *Interpreter) evaluateLogical(expr *ast.Logical) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Kind == token.Or {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else if !runtime.Truthy(left) {
		return left, nil
	}
	return i.evaluate(expr.Right)
}

// lookUpVariable reads a resolved local at its recorded depth. Anything the
// resolver left unresolved is a global.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (runtime.Value, error) {
	var (
		val runtime.Value
		err error
	)
	if depth, ok := i.locals[expr]; ok {
		val, err = i.environment.GetAt(depth, name.Lexeme)
	} else {
		val, err = i.globals.Get(name.Lexeme)
	}
	if err != nil {
		return nil, atLine(err, name.Line)
	}
	return val, nil
}

// evaluateAssign writes unresolved names straight into globals, even when a
// same-named variable lives in an enclosing non-global scope.
func (i *Interpreter) evaluateAssign(expr *ast.Assign) (runtime.Value, error) {
	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[expr]; ok {
		err = i.environment.AssignAt(depth, expr.Name.Lexeme, value)
	} else {
		err = i.globals.Assign(expr.Name.Lexeme, value)
	}
	if err != nil {
		return nil, atLine(err, expr.Name.Line)
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(expr *ast.Call) (runtime.Value, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	val, err := i.call(callee, args)
	if err != nil {
		return nil, atLine(err, expr.Paren.Line)
	}
	return val, nil
}
