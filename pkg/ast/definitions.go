package ast

import "lox/interpreter-go/pkg/token"

// Simple statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expr `json:"expression"`
}

func NewExpressionStatement(expression Expr) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expr `json:"expression"`
}

func NewPrintStatement(expression Expr) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expression}
}

// VarDeclaration binds Name in the current scope. Initializer may be nil.
type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expr        `json:"initializer,omitempty"`
}

func NewVarDeclaration(name token.Token, initializer Expr) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Stmt `json:"statements"`
}

func NewBlock(statements []Stmt) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Control flow

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expr `json:"condition"`
	ThenBranch Stmt `json:"thenBranch"`
	ElseBranch Stmt `json:"elseBranch,omitempty"`
}

func NewIfStatement(condition Expr, thenBranch Stmt, elseBranch Stmt) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// WhileStatement also carries desugared `for` loops.
type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expr `json:"condition"`
	Body      Stmt `json:"body"`
}

func NewWhileStatement(condition Expr, body Stmt) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
	Value   Expr        `json:"value,omitempty"`
}

func NewReturnStatement(keyword token.Token, value Expr) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

// Declarations

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   token.Token   `json:"name"`
	Params []token.Token `json:"params"`
	Body   []Stmt        `json:"body"`
}

func NewFunctionDeclaration(name token.Token, params []token.Token, body []Stmt) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

// Arity is the declared parameter count.
func (f *FunctionDeclaration) Arity() int {
	return len(f.Params)
}

type ClassDeclaration struct {
	nodeImpl
	statementMarker

	Name       token.Token            `json:"name"`
	Superclass *Variable              `json:"superclass,omitempty"`
	Methods    []*FunctionDeclaration `json:"methods"`
}

func NewClassDeclaration(name token.Token, superclass *Variable, methods []*FunctionDeclaration) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), Name: name, Superclass: superclass, Methods: methods}
}
