package runtime

import "fmt"

// ErrorKind classifies runtime failures.
type ErrorKind string

const (
	TypeError         ErrorKind = "TypeError"
	DivisionByZero    ErrorKind = "DivisionByZero"
	NotCallable       ErrorKind = "NotCallable"
	ArityMismatch     ErrorKind = "ArityMismatch"
	UndefinedVariable ErrorKind = "UndefinedVariable"
	UndefinedProperty ErrorKind = "UndefinedProperty"
	NotAnObject       ErrorKind = "NotAnObject"
	InvalidSuperclass ErrorKind = "InvalidSuperclass"
	NativeFailure     ErrorKind = "NativeFailure"
)

// RuntimeError aborts the current top-level execution unit. Line is 0 until
// the evaluator attaches the position of the node that failed.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int
}

// NewError builds a RuntimeError without a source line.
func NewError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// AtLine sets the source line when none has been recorded yet. The innermost
// failing node wins.
func (e *RuntimeError) AtLine(line int) *RuntimeError {
	if e.Line == 0 && line > 0 {
		e.Line = line
	}
	return e
}

// Is matches on Kind so callers can test with errors.Is(err, &RuntimeError{Kind: k}).
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
