package resolver

import "lox/interpreter-go/pkg/token"

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionInitializer
	functionMethod
)

type classKind int

const (
	classNone classKind = iota
	classPlain
	classSubclass
)

// scope maps a name to whether its definition has completed.
type scope map[string]bool

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() (scope, bool) {
	if len(r.scopes) == 0 {
		return nil, false
	}
	return r.scopes[len(r.scopes)-1], true
}

// declare marks name as not yet ready in the innermost scope. Globals are
// never tracked.
func (r *Resolver) declare(name token.Token) {
	current, ok := r.innermost()
	if !ok {
		return
	}
	if _, exists := current[name.Lexeme]; exists {
		r.report(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	current, ok := r.innermost()
	if !ok {
		return
	}
	current[name.Lexeme] = true
}

// defineSynthetic binds one of the reserved names `this` / `super`.
func (r *Resolver) defineSynthetic(name string) {
	if current, ok := r.innermost(); ok {
		current[name] = true
	}
}

func (r *Resolver) enterFunction(kind functionKind) functionKind {
	enclosing := r.currentFunction
	r.currentFunction = kind
	return enclosing
}

func (r *Resolver) enterClass(kind classKind) classKind {
	enclosing := r.currentClass
	r.currentClass = kind
	return enclosing
}
