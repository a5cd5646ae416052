package ast

import (
	"encoding/json"
	"fmt"
	"io"

	"lox/interpreter-go/pkg/token"
)

// Decode reads a program in the JSON interchange form emitted by the parser:
//
//	{"statements": [{"type": "PrintStatement", "expression": {...}}, ...]}
//
// Token-bearing fields are either a bare lexeme string or an object
// {"lexeme": "x", "line": 3}.
func Decode(r io.Reader) ([]Stmt, error) {
	var doc struct {
		Statements []map[string]any `json:"statements"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("ast: parse program: %w", err)
	}
	if doc.Statements == nil {
		return nil, fmt.Errorf("ast: program has no statements array")
	}
	stmts := make([]Stmt, 0, len(doc.Statements))
	for idx, raw := range doc.Statements {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return nil, fmt.Errorf("ast: statement %d: %w", idx, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStmt(node map[string]any) (Stmt, error) {
	if node == nil {
		return nil, fmt.Errorf("missing statement")
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeExpressionStatement:
		expr, err := decodeChildExpr(node, "expression")
		if err != nil {
			return nil, err
		}
		return NewExpressionStatement(expr), nil
	case NodePrintStatement:
		expr, err := decodeChildExpr(node, "expression")
		if err != nil {
			return nil, err
		}
		return NewPrintStatement(expr), nil
	case NodeVarDeclaration:
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		var init Expr
		if _, ok := node["initializer"]; ok && node["initializer"] != nil {
			init, err = decodeChildExpr(node, "initializer")
			if err != nil {
				return nil, err
			}
		}
		return NewVarDeclaration(name, init), nil
	case NodeBlock:
		stmts, err := decodeStmtList(node, "statements")
		if err != nil {
			return nil, err
		}
		return NewBlock(stmts), nil
	case NodeIfStatement:
		cond, err := decodeChildExpr(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeChildStmt(node, "thenBranch")
		if err != nil {
			return nil, err
		}
		var otherwise Stmt
		if raw, ok := node["elseBranch"].(map[string]any); ok {
			otherwise, err = decodeStmt(raw)
			if err != nil {
				return nil, err
			}
		}
		return NewIfStatement(cond, then, otherwise), nil
	case NodeWhileStatement:
		cond, err := decodeChildExpr(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeChildStmt(node, "body")
		if err != nil {
			return nil, err
		}
		return NewWhileStatement(cond, body), nil
	case NodeFunctionDeclaration:
		return decodeFunction(node)
	case NodeReturnStatement:
		keyword, err := decodeTokenField(node, "keyword")
		if err != nil {
			keyword = token.New(token.Return, "return", 0)
		}
		keyword.Kind = token.Return
		var value Expr
		if node["value"] != nil {
			value, err = decodeChildExpr(node, "value")
			if err != nil {
				return nil, err
			}
		}
		return NewReturnStatement(keyword, value), nil
	case NodeClassDeclaration:
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		var super *Variable
		if node["superclass"] != nil {
			expr, err := decodeChildExpr(node, "superclass")
			if err != nil {
				return nil, err
			}
			v, ok := expr.(*Variable)
			if !ok {
				return nil, fmt.Errorf("class %s superclass must be a Variable, got %s", name.Lexeme, expr.NodeType())
			}
			super = v
		}
		rawMethods, _ := node["methods"].([]any)
		methods := make([]*FunctionDeclaration, 0, len(rawMethods))
		for _, raw := range rawMethods {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid method entry %T", raw)
			}
			fn, err := decodeFunction(child)
			if err != nil {
				return nil, err
			}
			methods = append(methods, fn)
		}
		return NewClassDeclaration(name, super, methods), nil
	default:
		return nil, fmt.Errorf("unsupported statement type %q", typ)
	}
}

func decodeFunction(node map[string]any) (*FunctionDeclaration, error) {
	name, err := decodeIdentToken(node, "name")
	if err != nil {
		return nil, err
	}
	rawParams, _ := node["params"].([]any)
	params := make([]token.Token, 0, len(rawParams))
	for _, raw := range rawParams {
		param, err := decodeToken(raw)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", name.Lexeme, err)
		}
		if param.Line == 0 {
			param.Line = lineOf(node)
		}
		if token.IsKeyword(param.Lexeme) {
			return nil, fmt.Errorf("function %s: reserved word %q used as a parameter", name.Lexeme, param.Lexeme)
		}
		params = append(params, token.Ident(param.Lexeme, param.Line))
	}
	body, err := decodeStmtList(node, "body")
	if err != nil {
		return nil, err
	}
	return NewFunctionDeclaration(name, params, body), nil
}

var unaryOperators = map[token.Kind]bool{
	token.Minus: true,
	token.Bang:  true,
}

var binaryOperators = map[token.Kind]bool{
	token.Plus:         true,
	token.Minus:        true,
	token.Star:         true,
	token.Slash:        true,
	token.EqualEqual:   true,
	token.BangEqual:    true,
	token.Less:         true,
	token.LessEqual:    true,
	token.Greater:      true,
	token.GreaterEqual: true,
}

func decodeExpr(node map[string]any) (Expr, error) {
	if node == nil {
		return nil, fmt.Errorf("missing expression")
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeNilLiteral:
		return NewNilLiteral(), nil
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("boolean literal requires a bool value")
		}
		return NewBooleanLiteral(val), nil
	case NodeNumberLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("number literal requires a numeric value")
		}
		return NewNumberLiteral(val), nil
	case NodeStringLiteral:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("string literal requires a string value")
		}
		return NewStringLiteral(val), nil
	case NodeGrouping:
		inner, err := decodeChildExpr(node, "expression")
		if err != nil {
			return nil, err
		}
		return NewGrouping(inner), nil
	case NodeUnary:
		operator, err := decodeOperatorToken(node, "operator")
		if err != nil {
			return nil, err
		}
		if !unaryOperators[operator.Kind] {
			return nil, fmt.Errorf("unary expression requires '-' or '!', got %q", operator.Lexeme)
		}
		right, err := decodeChildExpr(node, "right")
		if err != nil {
			return nil, err
		}
		return NewUnary(operator, right), nil
	case NodeBinary, NodeLogical:
		left, err := decodeChildExpr(node, "left")
		if err != nil {
			return nil, err
		}
		operator, err := decodeOperatorToken(node, "operator")
		if err != nil {
			return nil, err
		}
		right, err := decodeChildExpr(node, "right")
		if err != nil {
			return nil, err
		}
		if NodeType(typ) == NodeLogical {
			if operator.Kind != token.And && operator.Kind != token.Or {
				return nil, fmt.Errorf("logical expression requires 'and' or 'or', got %q", operator.Lexeme)
			}
			return NewLogical(left, operator, right), nil
		}
		if !binaryOperators[operator.Kind] {
			return nil, fmt.Errorf("binary expression does not accept operator %q", operator.Lexeme)
		}
		return NewBinary(left, operator, right), nil
	case NodeVariable:
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		return NewVariable(name), nil
	case NodeAssign:
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeChildExpr(node, "value")
		if err != nil {
			return nil, err
		}
		return NewAssign(name, value), nil
	case NodeCall:
		callee, err := decodeChildExpr(node, "callee")
		if err != nil {
			return nil, err
		}
		paren, err := decodeTokenField(node, "paren")
		if err != nil {
			paren = token.New(token.RightParen, ")", lineOf(node))
		}
		paren.Kind = token.RightParen
		rawArgs, _ := node["arguments"].([]any)
		args := make([]Expr, 0, len(rawArgs))
		for _, raw := range rawArgs {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid argument %T", raw)
			}
			arg, err := decodeExpr(child)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return NewCall(callee, paren, args), nil
	case NodeGet:
		object, err := decodeChildExpr(node, "object")
		if err != nil {
			return nil, err
		}
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		return NewGet(object, name), nil
	case NodeSet:
		object, err := decodeChildExpr(node, "object")
		if err != nil {
			return nil, err
		}
		name, err := decodeIdentToken(node, "name")
		if err != nil {
			return nil, err
		}
		value, err := decodeChildExpr(node, "value")
		if err != nil {
			return nil, err
		}
		return NewSet(object, name, value), nil
	case NodeThis:
		keyword, err := decodeTokenField(node, "keyword")
		if err != nil {
			keyword = token.New(token.This, "this", lineOf(node))
		}
		keyword.Kind = token.This
		return NewThis(keyword), nil
	case NodeSuper:
		keyword, err := decodeTokenField(node, "keyword")
		if err != nil {
			keyword = token.New(token.Super, "super", lineOf(node))
		}
		keyword.Kind = token.Super
		method, err := decodeIdentToken(node, "method")
		if err != nil {
			return nil, err
		}
		return NewSuper(keyword, method), nil
	default:
		return nil, fmt.Errorf("unsupported expression type %q", typ)
	}
}

func decodeChildExpr(node map[string]any, field string) (Expr, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s missing %s", node["type"], field)
	}
	return decodeExpr(raw)
}

func decodeChildStmt(node map[string]any, field string) (Stmt, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s missing %s", node["type"], field)
	}
	return decodeStmt(raw)
}

func decodeStmtList(node map[string]any, field string) ([]Stmt, error) {
	raw, _ := node[field].([]any)
	stmts := make([]Stmt, 0, len(raw))
	for _, entry := range raw {
		child, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement entry %T", entry)
		}
		stmt, err := decodeStmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeIdentToken(node map[string]any, field string) (token.Token, error) {
	t, err := decodeTokenField(node, field)
	if err != nil {
		return token.Token{}, err
	}
	if token.IsKeyword(t.Lexeme) {
		return token.Token{}, fmt.Errorf("%s %s: reserved word %q used as a name", node["type"], field, t.Lexeme)
	}
	return token.Ident(t.Lexeme, t.Line), nil
}

func decodeOperatorToken(node map[string]any, field string) (token.Token, error) {
	t, err := decodeTokenField(node, field)
	if err != nil {
		return token.Token{}, err
	}
	return token.Operator(t.Lexeme, t.Line)
}

func decodeTokenField(node map[string]any, field string) (token.Token, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return token.Token{}, fmt.Errorf("%s missing %s", node["type"], field)
	}
	t, err := decodeToken(raw)
	if err != nil {
		return token.Token{}, err
	}
	if t.Line == 0 {
		t.Line = lineOf(node)
	}
	return t, nil
}

func decodeToken(raw any) (token.Token, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return token.Token{}, fmt.Errorf("empty token lexeme")
		}
		return token.Token{Lexeme: v}, nil
	case map[string]any:
		lexeme, _ := v["lexeme"].(string)
		if lexeme == "" {
			return token.Token{}, fmt.Errorf("token missing lexeme")
		}
		line, _ := v["line"].(float64)
		return token.Token{Lexeme: lexeme, Line: int(line)}, nil
	default:
		return token.Token{}, fmt.Errorf("invalid token %T", raw)
	}
}

// lineOf reads the optional node-level "line" field.
func lineOf(node map[string]any) int {
	line, _ := node["line"].(float64)
	return int(line)
}
