package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"lox/interpreter-go/pkg/ast"
)

// Program is a decoded program together with the file it came from.
type Program struct {
	Path       string
	Statements []ast.Stmt
}

// LoadProgram reads a JSON-encoded program produced by the parser.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, errors.New("program: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "program: resolve %s", path)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "program: open %s", absPath)
	}
	defer file.Close()

	stmts, err := ast.Decode(file)
	if err != nil {
		return nil, &DecodeError{Path: absPath, Err: err}
	}
	return &Program{Path: absPath, Statements: stmts}, nil
}

// DecodeError reports a program file that exists but is not a valid AST.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("program: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
