package driver

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Reporter writes static and runtime diagnostics for the CLI.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter decides once whether output to w is colorized. Auto mode
// colors only when w is a terminal.
func NewReporter(w io.Writer, mode ColorMode) *Reporter {
	return &Reporter{w: w, color: useColor(w, mode)}
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DescribeStatic formats a resolver diagnostic for CLI output.
func DescribeStatic(diag resolver.Diagnostic) string {
	return diag.Error()
}

// DescribeRuntime formats a runtime error for CLI output.
func DescribeRuntime(err *runtime.RuntimeError) string {
	message := strings.TrimSpace(err.Message)
	if err.Line > 0 {
		return fmt.Sprintf("%s\n[line %d]", message, err.Line)
	}
	return message
}

// Static writes every diagnostic on its own line.
func (r *Reporter) Static(diags []resolver.Diagnostic) {
	for _, diag := range diags {
		r.writeLine(DescribeStatic(diag))
	}
}

// Runtime writes a runtime error.
func (r *Reporter) Runtime(err *runtime.RuntimeError) {
	if err == nil {
		return
	}
	r.writeLine(DescribeRuntime(err))
}

// Error writes any other failure (I/O, manifest, decode).
func (r *Reporter) Error(err error) {
	r.writeLine(err.Error())
}

func (r *Reporter) writeLine(text string) {
	if r.color {
		fmt.Fprintf(r.w, "%s%s%s\n", ansiRed, text, ansiReset)
		return
	}
	fmt.Fprintln(r.w, text)
}
