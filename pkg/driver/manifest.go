package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/interpreter"
)

// ManifestFileName is the project file the CLI looks for.
const ManifestFileName = "lox.yml"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Entry       string
	Natives     []string
	Diagnostics DiagnosticsConfig

	nativesSet bool
}

// DiagnosticsConfig controls how errors are rendered.
type DiagnosticsConfig struct {
	Color ColorMode
}

// ColorMode selects when diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var ErrManifestNotFound = errors.New("manifest: no " + ManifestFileName + " found")

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: resolve %s", path)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: open %s", absPath)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("manifest: %s is empty", absPath)
		}
		return nil, errors.Wrapf(err, "manifest: parse %s", absPath)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start toward the filesystem root and returns the
// first lox.yml it sees.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "manifest: resolve %s", start)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// EntryPath resolves the entry program relative to the manifest's directory.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

// InterpreterOptions translates manifest settings into interpreter options.
func (m *Manifest) InterpreterOptions() []interpreter.Option {
	if m == nil || !m.nativesSet {
		return nil
	}
	return []interpreter.Option{interpreter.WithNatives(m.Natives...)}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	}
	if m.Version != "" && !versionPattern.MatchString(m.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("invalid version %q", m.Version))
	}
	seen := make(map[string]struct{}, len(m.Natives))
	for i, name := range m.Natives {
		if name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d] must be a non-empty string", i))
			continue
		}
		if !interpreter.IsNative(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d]: unknown native %q (known: %s)", i, name, strings.Join(interpreter.NativeNames(), ", ")))
		}
		if _, dup := seen[name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d]: %q listed twice", i, name))
		}
		seen[name] = struct{}{}
	}
	if !m.Diagnostics.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics.color must be auto, always or never, got %q", m.Diagnostics.Color))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}([0-9A-Za-z\-\+\.]*)?$`)

type manifestFile struct {
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Entry       string     `yaml:"entry"`
	Natives     *[]string  `yaml:"natives"`
	Diagnostics *yamlDiags `yaml:"diagnostics"`
}

type yamlDiags struct {
	Color string `yaml:"color"`
}

func (raw manifestFile) toManifest(path string) *Manifest {
	m := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(raw.Name),
		Version:     strings.TrimSpace(raw.Version),
		Entry:       strings.TrimSpace(raw.Entry),
		Diagnostics: DiagnosticsConfig{Color: ColorAuto},
	}
	if raw.Natives != nil {
		m.nativesSet = true
		for _, name := range *raw.Natives {
			m.Natives = append(m.Natives, strings.TrimSpace(name))
		}
	}
	if raw.Diagnostics != nil && raw.Diagnostics.Color != "" {
		m.Diagnostics.Color = ColorMode(strings.ToLower(strings.TrimSpace(raw.Diagnostics.Color)))
	}
	return m
}
