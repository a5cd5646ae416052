package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: demo
version: 0.1.0
entry: main.lox.json
natives: [clock]
diagnostics:
  color: Never
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.EntryPath() != filepath.Join(dir, "main.lox.json") {
		t.Fatalf("unexpected entry path %s", manifest.EntryPath())
	}
	if manifest.Diagnostics.Color != ColorNever {
		t.Fatalf("expected color never, got %q", manifest.Diagnostics.Color)
	}
	if len(manifest.InterpreterOptions()) != 1 {
		t.Fatalf("expected a natives option")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "name: demo\nentry: main.json\n")
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if manifest.Diagnostics.Color != ColorAuto {
		t.Fatalf("expected auto color by default, got %q", manifest.Diagnostics.Color)
	}
	if opts := manifest.InterpreterOptions(); opts != nil {
		t.Fatalf("expected default natives, got %d options", len(opts))
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
version: "x.y"
natives: [clock, teleport, clock]
diagnostics:
  color: sometimes
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		"entry must be provided",
		`invalid version "x.y"`,
		`unknown native "teleport"`,
		`"clock" listed twice`,
		"diagnostics.color must be auto, always or never",
	}
	msg := verr.Error()
	for _, fragment := range want {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in %s", fragment, msg)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "name: demo\nentry: main.json\ntargets: {}\n")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "targets") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, "name: demo\nentry: main.json\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	want, _ := filepath.EvalSymlinks(path)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLoadManifestMissingFileWrapsCause(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a wrapped not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "manifest: open") {
		t.Fatalf("expected open context in %q", err.Error())
	}
}
