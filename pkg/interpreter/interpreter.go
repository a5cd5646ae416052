package interpreter

import (
	"errors"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Lox AST nodes.
type Interpreter struct {
	globals     *runtime.Environment
	environment *runtime.Environment
	locals      map[ast.Expr]int
	out         io.Writer
	natives     []string
}

// Option customises an interpreter at construction time.
type Option func(*Interpreter)

// WithOutput redirects `print` output (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithNatives limits the host functions installed into globals. Names that
// are not known natives are ignored; callers validate them up front.
func WithNatives(names ...string) Option {
	return func(i *Interpreter) {
		i.natives = append([]string{}, names...)
	}
}

// New returns an interpreter whose globals hold the selected natives
// (every known native unless WithNatives says otherwise).
func New(opts ...Option) *Interpreter {
	globals := runtime.NewEnvironment(nil)
	i := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		out:         os.Stdout,
		natives:     NativeNames(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.installNatives()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.globals
}

// Resolve runs the static pass over stmts and records the depths it finds.
// Depths accumulate across calls so earlier programs keep working.
func (i *Interpreter) Resolve(stmts []ast.Stmt) []resolver.Diagnostic {
	locals, diags := resolver.Resolve(stmts)
	for expr, depth := range locals {
		i.locals[expr] = depth
	}
	return diags
}

// Interpret executes stmts in order. A runtime error stops the remaining
// statements and is returned as a report; bindings made before it stand.
func (i *Interpreter) Interpret(stmts []ast.Stmt) *runtime.RuntimeError {
	for _, stmt := range stmts {
		result, err := i.execute(stmt)
		if err != nil {
			return asRuntimeError(err)
		}
		if result.returning {
			return nil
		}
	}
	return nil
}

// Outcome summarises one Run.
type Outcome struct {
	Diagnostics  []resolver.Diagnostic
	RuntimeError *runtime.RuntimeError
}

// OK reports whether the program resolved cleanly and ran to completion.
func (o Outcome) OK() bool {
	return len(o.Diagnostics) == 0 && o.RuntimeError == nil
}

// Run resolves stmts and, when no static errors were found, executes them.
func (i *Interpreter) Run(stmts []ast.Stmt) Outcome {
	if diags := i.Resolve(stmts); len(diags) > 0 {
		return Outcome{Diagnostics: diags}
	}
	return Outcome{RuntimeError: i.Interpret(stmts)}
}

func asRuntimeError(err error) *runtime.RuntimeError {
	var rtErr *runtime.RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr
	}
	return runtime.NewError(runtime.NativeFailure, "%s", err.Error())
}
