package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func newCapturing() (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(WithOutput(&out)), &out
}

func outputLines(out *bytes.Buffer) []string {
	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// runProgram resolves and executes stmts, failing the test on static errors.
func runProgram(t *testing.T, stmts ...ast.Stmt) ([]string, *runtime.RuntimeError) {
	t.Helper()
	interp, out := newCapturing()
	outcome := interp.Run(stmts)
	if len(outcome.Diagnostics) > 0 {
		t.Fatalf("unexpected static errors: %v", outcome.Diagnostics)
	}
	return outputLines(out), outcome.RuntimeError
}

func expectOutput(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected output %q, got %q", want, got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("expected output %q, got %q", want, got)
		}
	}
}

func expectRuntimeError(t *testing.T, err *runtime.RuntimeError, kind runtime.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s runtime error, got none", kind)
	}
	if err.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, err.Kind, err.Message)
	}
}
