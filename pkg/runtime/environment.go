package runtime

import "sort"

// Environment is one lexical scope. Scopes are shared: the interpreter's
// current-scope pointer and every closure created inside a scope hold the
// same *Environment, so a scope lives as long as any of them.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new environment, optionally nested under an enclosing one.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil when global).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Ancestor returns the scope exactly depth links outward.
func (e *Environment) Ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth && env != nil; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the scope depth links outward without searching further.
func (e *Environment) GetAt(depth int, name string) (Value, error) {
	env := e.Ancestor(depth)
	if env == nil {
		return nil, undefinedVariable(name)
	}
	v, ok := env.values[name]
	if !ok {
		return nil, undefinedVariable(name)
	}
	return v, nil
}

// AssignAt writes name into the scope depth links outward.
func (e *Environment) AssignAt(depth int, name string, value Value) error {
	env := e.Ancestor(depth)
	if env == nil {
		return undefinedVariable(name)
	}
	env.values[name] = value
	return nil
}

// Has reports whether name is bound in this exact scope.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func undefinedVariable(name string) *RuntimeError {
	return NewError(UndefinedVariable, "Undefined variable '%s'.", name)
}
