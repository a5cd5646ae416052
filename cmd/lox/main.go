package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "lox-cli 0.0.0-dev"

// Exit codes follow the sysexits convention used by other Lox tools.
const (
	exitOK       = 0
	exitUsage    = 1
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(args[1:], false)
	case "check":
		return runEntry(args[1:], true)
	default:
		return runEntry(args, false)
	}
}

// runEntry loads the program named by args (or the manifest entry when args
// is empty) and either executes it or only resolves it.
func runEntry(args []string, checkOnly bool) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}

	var (
		manifest *driver.Manifest
		entry    string
		err      error
	)
	if len(args) == 0 {
		manifest, err = loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, driver.ErrManifestNotFound) {
				fmt.Fprintf(os.Stderr, "lox run requires a program file (%s not found)\n", driver.ManifestFileName)
			} else {
				fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			}
			return exitUsage
		}
		entry = manifest.EntryPath()
	} else {
		entry = args[0]
		manifest, err = loadManifestFrom(filepath.Dir(entry))
		if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintf(os.Stderr, "failed to read manifest for %s: %v\n", entry, err)
			return exitUsage
		}
	}

	colorMode := driver.ColorAuto
	if manifest != nil {
		colorMode = manifest.Diagnostics.Color
	}
	reporter := driver.NewReporter(os.Stderr, colorMode)

	program, err := driver.LoadProgram(entry)
	if err != nil {
		reporter.Error(err)
		var decodeErr *driver.DecodeError
		if errors.As(err, &decodeErr) {
			return exitDataErr
		}
		return exitUsage
	}

	opts := append(manifest.InterpreterOptions(), interpreter.WithOutput(os.Stdout))
	interp := interpreter.New(opts...)

	if checkOnly {
		if diags := interp.Resolve(program.Statements); len(diags) > 0 {
			reporter.Static(diags)
			return exitDataErr
		}
		fmt.Fprintf(os.Stdout, "%s: ok\n", entry)
		return exitOK
	}

	outcome := interp.Run(program.Statements)
	if len(outcome.Diagnostics) > 0 {
		reporter.Static(outcome.Diagnostics)
		return exitDataErr
	}
	if outcome.RuntimeError != nil {
		reporter.Runtime(outcome.RuntimeError)
		return exitSoftware
	}
	return exitOK
}

// loadManifestFrom finds and loads the nearest lox.yml at or above start.
func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lox run [program.json]")
	fmt.Fprintln(os.Stderr, "  lox check [program.json]")
	fmt.Fprintln(os.Stderr, "  lox <program.json>")
	fmt.Fprintln(os.Stderr, "  lox version")
}
