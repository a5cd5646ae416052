package ast

import "lox/interpreter-go/pkg/token"

// Builders for hand-assembled programs. Tokens created here report line 1;
// use the New* constructors directly when line numbers matter.

func tok(name string) token.Token {
	return token.Ident(name, 1)
}

func op(lexeme string) token.Token {
	t, err := token.Operator(lexeme, 1)
	if err != nil {
		panic(err)
	}
	return t
}

// Literal helpers.

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Expression helpers.

func Group(inner Expr) *Grouping {
	return NewGrouping(inner)
}

func Neg(right Expr) *Unary {
	return NewUnary(op("-"), right)
}

func Not(right Expr) *Unary {
	return NewUnary(op("!"), right)
}

func Bin(operator string, left, right Expr) *Binary {
	return NewBinary(left, op(operator), right)
}

func And(left, right Expr) *Logical {
	return NewLogical(left, op("and"), right)
}

func Or(left, right Expr) *Logical {
	return NewLogical(left, op("or"), right)
}

func Var(name string) *Variable {
	return NewVariable(tok(name))
}

func AssignTo(name string, value Expr) *Assign {
	return NewAssign(tok(name), value)
}

func CallExpr(callee Expr, args ...Expr) *Call {
	return NewCall(callee, op(")"), args)
}

func Member(object Expr, name string) *Get {
	return NewGet(object, tok(name))
}

func SetMember(object Expr, name string, value Expr) *Set {
	return NewSet(object, tok(name), value)
}

func Self() *This {
	return NewThis(tok("this"))
}

func SuperMethod(method string) *Super {
	return NewSuper(tok("super"), tok(method))
}

// Statement helpers.

func ExprStmt(expr Expr) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expr) *PrintStatement {
	return NewPrintStatement(expr)
}

func Let(name string, initializer Expr) *VarDeclaration {
	return NewVarDeclaration(tok(name), initializer)
}

func BlockOf(stmts ...Stmt) *Block {
	return NewBlock(stmts)
}

func If(condition Expr, then Stmt, otherwise Stmt) *IfStatement {
	return NewIfStatement(condition, then, otherwise)
}

func While(condition Expr, body Stmt) *WhileStatement {
	return NewWhileStatement(condition, body)
}

// For builds the block/while shape a parser produces for a `for` loop.
// Any of initializer, condition and increment may be nil.
func For(initializer Stmt, condition Expr, increment Expr, body Stmt) Stmt {
	if increment != nil {
		body = NewBlock([]Stmt{body, NewExpressionStatement(increment)})
	}
	if condition == nil {
		condition = NewBooleanLiteral(true)
	}
	var loop Stmt = NewWhileStatement(condition, body)
	if initializer != nil {
		loop = NewBlock([]Stmt{initializer, loop})
	}
	return loop
}

func Fn(name string, params []string, body ...Stmt) *FunctionDeclaration {
	paramTokens := make([]token.Token, 0, len(params))
	for _, p := range params {
		paramTokens = append(paramTokens, tok(p))
	}
	return NewFunctionDeclaration(tok(name), paramTokens, body)
}

func Ret(value Expr) *ReturnStatement {
	return NewReturnStatement(tok("return"), value)
}

// Class builds a class declaration; superclass may be empty.
func Class(name string, superclass string, methods ...*FunctionDeclaration) *ClassDeclaration {
	var super *Variable
	if superclass != "" {
		super = Var(superclass)
	}
	return NewClassDeclaration(tok(name), super, methods)
}

func Program(stmts ...Stmt) []Stmt {
	return stmts
}
