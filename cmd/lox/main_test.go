package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloProgram = `{"statements": [
  {"type": "PrintStatement", "expression": {"type": "StringLiteral", "value": "hello"}}
]}`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestRunDirectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	writeFile(t, path, helloProgram)

	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != exitOK {
		t.Fatalf("run returned exit code %d, stderr %q", code, stderr)
	}
	if stdout != "hello\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunShortcutAcceptsProgramFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	writeFile(t, path, helloProgram)

	code, stdout, _ := captureCLI(t, []string{path})
	if code != exitOK || stdout != "hello\n" {
		t.Fatalf("unexpected result code=%d stdout=%q", code, stdout)
	}
}

func TestRunUsesManifestEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lox.yml"), "name: demo\nentry: src/main.json\ndiagnostics:\n  color: never\n")
	writeFile(t, filepath.Join(dir, "src", "main.json"), helloProgram)
	chdir(t, dir)

	code, stdout, stderr := captureCLI(t, []string{"run"})
	if code != exitOK {
		t.Fatalf("run returned exit code %d, stderr %q", code, stderr)
	}
	if stdout != "hello\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunWithoutManifestOrFile(t *testing.T) {
	chdir(t, t.TempDir())
	code, _, stderr := captureCLI(t, []string{"run"})
	if code != exitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr, "lox.yml not found") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunManifestRestrictsNatives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lox.yml"), "name: demo\nentry: main.json\nnatives: []\n")
	writeFile(t, filepath.Join(dir, "main.json"), `{"statements": [
  {"type": "PrintStatement", "expression": {"type": "Call", "callee": {"type": "Variable", "name": {"lexeme": "clock", "line": 1}}, "arguments": []}}
]}`)

	code, _, stderr := captureCLI(t, []string{"run", filepath.Join(dir, "main.json")})
	if code != exitSoftware {
		t.Fatalf("expected runtime failure exit code, got %d", code)
	}
	if stderr != "Undefined variable 'clock'.\n[line 1]\n" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunStaticErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	writeFile(t, path, `{"statements": [
  {"type": "PrintStatement", "expression": {"type": "StringLiteral", "value": "skipped"}},
  {"type": "ReturnStatement", "keyword": {"lexeme": "return", "line": 2}}
]}`)

	code, stdout, stderr := captureCLI(t, []string{"run", path})
	if code != exitDataErr {
		t.Fatalf("expected exit code %d, got %d", exitDataErr, code)
	}
	if stdout != "" {
		t.Fatalf("program must not run after static errors, got %q", stdout)
	}
	if stderr != "[line 2] Error at 'return': Can't return from top-level code.\n" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunMalformedProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	writeFile(t, path, `{"statements": [{"type": "Teleport"}]}`)

	code, _, stderr := captureCLI(t, []string{"run", path})
	if code != exitDataErr {
		t.Fatalf("expected exit code %d, got %d", exitDataErr, code)
	}
	if !strings.Contains(stderr, "unsupported statement type") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, _ := captureCLI(t, []string{"run", filepath.Join(t.TempDir(), "nope.json")})
	if code != exitUsage {
		t.Fatalf("expected exit code %d, got %d", exitUsage, code)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.json")
	writeFile(t, path, helloProgram)

	code, stdout, _ := captureCLI(t, []string{"check", path})
	if code != exitOK {
		t.Fatalf("check returned exit code %d", code)
	}
	if strings.Contains(stdout, "hello") || !strings.HasSuffix(stdout, ": ok\n") {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestVersionAndUsage(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != exitOK || stdout != cliToolVersion+"\n" {
		t.Fatalf("unexpected version output code=%d stdout=%q", code, stdout)
	}
	code, _, stderr := captureCLI(t, nil)
	if code != exitUsage || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("unexpected usage output code=%d stderr=%q", code, stderr)
	}
	code, _, _ = captureCLI(t, []string{"run", "a.json", "b.json"})
	if code != exitUsage {
		t.Fatalf("expected usage error for extra arguments, got %d", code)
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}

	if err := rOut.Close(); err != nil {
		t.Fatalf("stdout pipe close: %v", err)
	}
	if err := rErr.Close(); err != nil {
		t.Fatalf("stderr pipe close: %v", err)
	}

	return code, string(outBytes), string(errBytes)
}
