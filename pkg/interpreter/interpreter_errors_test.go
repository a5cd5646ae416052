package interpreter

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func TestArityMismatchSkipsBinding(t *testing.T) {
	out, err := runProgram(t,
		ast.Let("ran", ast.Bool(false)),
		ast.Fn("f", nil, ast.ExprStmt(ast.AssignTo("ran", ast.Bool(true)))),
		ast.ExprStmt(ast.CallExpr(ast.Var("f"), ast.Num(1))),
	)
	expectRuntimeError(t, err, runtime.ArityMismatch)
	if err.Message != "Expected 0 arguments but got 1." {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if len(out) != 0 {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestArityMismatchDoesNotRunBody(t *testing.T) {
	interp, _ := newCapturing()
	outcome := interp.Run(ast.Program(
		ast.Let("ran", ast.Bool(false)),
		ast.Fn("f", nil, ast.ExprStmt(ast.AssignTo("ran", ast.Bool(true)))),
		ast.ExprStmt(ast.CallExpr(ast.Var("f"), ast.Num(1))),
	))
	expectRuntimeError(t, outcome.RuntimeError, runtime.ArityMismatch)
	ran, _ := interp.GlobalEnvironment().Get("ran")
	if ran != (runtime.BoolValue{Val: false}) {
		t.Fatalf("function body ran despite arity mismatch")
	}
}

func TestCallingNonCallable(t *testing.T) {
	_, err := runProgram(t, ast.ExprStmt(ast.CallExpr(ast.Str("nope"))))
	expectRuntimeError(t, err, runtime.NotCallable)
}

func TestDivisionErrors(t *testing.T) {
	_, err := runProgram(t, ast.Print(ast.Bin("/", ast.Num(1), ast.Num(0))))
	expectRuntimeError(t, err, runtime.DivisionByZero)

	_, err = runProgram(t, ast.Print(ast.Bin("/", ast.Str("1"), ast.Num(0))))
	expectRuntimeError(t, err, runtime.TypeError)
}

func TestRuntimeErrorCarriesLine(t *testing.T) {
	minus, _ := token.Operator("-", 7)
	expr := ast.NewBinary(ast.Str("a"), minus, ast.Num(1))
	_, err := runProgram(t, ast.Print(expr))
	expectRuntimeError(t, err, runtime.TypeError)
	if err.Line != 7 {
		t.Fatalf("expected line 7, got %d", err.Line)
	}
}

func TestRuntimeErrorKeepsEarlierEffects(t *testing.T) {
	interp, out := newCapturing()
	outcome := interp.Run(ast.Program(
		ast.Let("a", ast.Num(1)),
		ast.Print(ast.Str("first")),
		ast.Print(ast.Var("missing")),
		ast.Print(ast.Str("never")),
	))
	expectRuntimeError(t, outcome.RuntimeError, runtime.UndefinedVariable)
	if outcome.RuntimeError.Message != "Undefined variable 'missing'." {
		t.Fatalf("unexpected message %q", outcome.RuntimeError.Message)
	}
	expectOutput(t, outputLines(out), "first")
	if val, err := interp.GlobalEnvironment().Get("a"); err != nil || val != (runtime.NumberValue{Val: 1}) {
		t.Fatalf("global mutation lost: %#v (%v)", val, err)
	}
}

func TestErrorInsideCallRestoresScope(t *testing.T) {
	interp, out := newCapturing()
	outcome := interp.Run(ast.Program(
		ast.Fn("boom", nil, ast.BlockOf(ast.Print(ast.Bin("-", ast.Str("x"), ast.Num(1))))),
		ast.ExprStmt(ast.CallExpr(ast.Var("boom"))),
	))
	expectRuntimeError(t, outcome.RuntimeError, runtime.TypeError)
	if interp.environment != interp.globals {
		t.Fatalf("current scope leaked after runtime error")
	}

	// The same interpreter keeps working for a later unit.
	outcome = interp.Run(ast.Program(ast.Print(ast.Str("again"))))
	if !outcome.OK() {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	expectOutput(t, outputLines(out), "again")
}
