package resolver

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Resolver walks a program once before execution, computing the scope depth
// of every local variable reference and rejecting statically invalid uses of
// `return`, `this` and `super`.
type Resolver struct {
	scopes          []scope
	locals          map[ast.Expr]int
	diagnostics     []Diagnostic
	currentFunction functionKind
	currentClass    classKind
}

// Diagnostic is a static error tied to the token where it was detected.
type Diagnostic struct {
	Token   token.Token
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", d.Token.Line, d.Token.Lexeme, d.Message)
}

// New returns a resolver with an empty scope stack.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Resolve is a convenience wrapper around New().Resolve.
func Resolve(stmts []ast.Stmt) (map[ast.Expr]int, []Diagnostic) {
	return New().Resolve(stmts)
}

// Resolve annotates stmts and returns the depth of every resolved local
// reference together with all static errors found. Expressions absent from
// the map are globals. Errors never stop the walk.
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[ast.Expr]int, []Diagnostic) {
	r.scopes = nil
	r.locals = make(map[ast.Expr]int)
	r.diagnostics = nil
	r.currentFunction = functionNone
	r.currentClass = classNone
	r.resolveStatements(stmts)
	return r.locals, r.diagnostics
}

func (r *Resolver) report(at token.Token, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Token: at, Message: message})
}

func (r *Resolver) resolveStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.PrintStatement:
		r.resolveExpression(s.Expression)
	case *ast.VarDeclaration:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.WhileStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.FunctionDeclaration:
		// Defined before the body so the function can call itself.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionPlain)
	case *ast.ReturnStatement:
		r.resolveReturn(s)
	case *ast.ClassDeclaration:
		r.resolveClass(s)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", stmt))
	}
}

func (r *Resolver) resolveReturn(s *ast.ReturnStatement) {
	if r.currentFunction == functionNone {
		r.report(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value == nil {
		return
	}
	if r.currentFunction == functionInitializer {
		r.report(s.Keyword, "Can't return a value from an initializer.")
	}
	r.resolveExpression(s.Value)
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDeclaration, kind functionKind) {
	enclosing := r.enterFunction(kind)
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(s *ast.ClassDeclaration) {
	enclosing := r.enterClass(classPlain)
	defer func() { r.currentClass = enclosing }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.report(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.defineSynthetic("super")
	}

	r.beginScope()
	r.defineSynthetic("this")
	for _, method := range s.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveExpression(expr ast.Expr) {
	switch e := expr.(type) {
	case nil:
		return
	case *ast.NilLiteral, *ast.BooleanLiteral, *ast.NumberLiteral, *ast.StringLiteral:
		return
	case *ast.Grouping:
		r.resolveExpression(e.Expression)
	case *ast.Unary:
		r.resolveExpression(e.Right)
	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(e.Object)
	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.report(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.report(e.Keyword, "Can't use 'super' outside of a class.")
		case classPlain:
			r.report(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", expr))
	}
}

func (r *Resolver) resolveVariable(v *ast.Variable) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		ready, ok := r.scopes[i][v.Name.Lexeme]
		if !ok {
			continue
		}
		if !ready {
			r.report(v.Name, "Can't read local variable in its own initializer.")
		}
		r.locals[v] = len(r.scopes) - 1 - i
		return
	}
}

// resolveLocal records the distance to the innermost scope binding name.
// Names found nowhere are left for the interpreter to look up as globals.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
