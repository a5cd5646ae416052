package token

import "fmt"

// Kind enumerates the lexical categories produced by the scanner.
type Kind string

const (
	LeftParen  Kind = "LEFT_PAREN"
	RightParen Kind = "RIGHT_PAREN"
	LeftBrace  Kind = "LEFT_BRACE"
	RightBrace Kind = "RIGHT_BRACE"
	Comma      Kind = "COMMA"
	Dot        Kind = "DOT"
	Minus      Kind = "MINUS"
	Plus       Kind = "PLUS"
	Semicolon  Kind = "SEMICOLON"
	Slash      Kind = "SLASH"
	Star       Kind = "STAR"

	Bang         Kind = "BANG"
	BangEqual    Kind = "BANG_EQUAL"
	Equal        Kind = "EQUAL"
	EqualEqual   Kind = "EQUAL_EQUAL"
	Greater      Kind = "GREATER"
	GreaterEqual Kind = "GREATER_EQUAL"
	Less         Kind = "LESS"
	LessEqual    Kind = "LESS_EQUAL"

	Identifier Kind = "IDENTIFIER"
	String     Kind = "STRING"
	Number     Kind = "NUMBER"

	And    Kind = "AND"
	Class  Kind = "CLASS"
	Else   Kind = "ELSE"
	False  Kind = "FALSE"
	Fun    Kind = "FUN"
	For    Kind = "FOR"
	If     Kind = "IF"
	Nil    Kind = "NIL"
	Or     Kind = "OR"
	Print  Kind = "PRINT"
	Return Kind = "RETURN"
	Super  Kind = "SUPER"
	This   Kind = "THIS"
	True   Kind = "TRUE"
	Var    Kind = "VAR"
	While  Kind = "WHILE"

	EOF Kind = "EOF"
)

var operatorKinds = map[string]Kind{
	"(":  LeftParen,
	")":  RightParen,
	"{":  LeftBrace,
	"}":  RightBrace,
	",":  Comma,
	".":  Dot,
	"-":  Minus,
	"+":  Plus,
	";":  Semicolon,
	"/":  Slash,
	"*":  Star,
	"!":  Bang,
	"!=": BangEqual,
	"=":  Equal,
	"==": EqualEqual,
	">":  Greater,
	">=": GreaterEqual,
	"<":  Less,
	"<=": LessEqual,

	"and": And,
	"or":  Or,
}

var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is a single lexeme with its kind and source line.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// New builds a token.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// Ident builds an identifier token, promoting reserved words to their keyword kind.
func Ident(name string, line int) Token {
	if kind, ok := keywords[name]; ok {
		return Token{Kind: kind, Lexeme: name, Line: line}
	}
	return Token{Kind: Identifier, Lexeme: name, Line: line}
}

// Operator builds an operator token from its lexeme.
func Operator(lexeme string, line int) (Token, error) {
	kind, ok := operatorKinds[lexeme]
	if !ok {
		return Token{}, fmt.Errorf("unknown operator %q", lexeme)
	}
	return Token{Kind: kind, Lexeme: lexeme, Line: line}, nil
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %d", t.Kind, t.Lexeme, t.Line)
}
