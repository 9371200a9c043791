// Package config assembles rho's merged configuration from a raw argument
// vector, explicit document paths, and conventional default documents.
//
// Every entry point takes the argument vector as a parameter: nothing in
// this package reads os.Args or other ambient process state, so the full
// resolution pipeline is testable without process-level mocking.
package config

import (
	"os"
	"path/filepath"

	"github.com/deverte/rho/pkg/argv"
	"github.com/deverte/rho/pkg/document"
)

// Flag spellings per logical option. Short and long forms are equivalent;
// single-valued options resolve to the last mention across both forms.
var (
	MathJaxConfigFlags  = []string{"-c", "--config"}
	DiagramFlags        = []string{"-d", "--diagram"}
	HelpFlags           = []string{"-h", "--help"}
	OutputFlags         = []string{"-o", "--output"}
	StyleFlags          = []string{"-s", "--style"}
	MathJaxTypesetFlags = []string{"-t", "--typeset"}
	VersionFlags        = []string{"-v", "--version"}
	WriteFlags          = []string{"-w", "--write"}
)

// Conventional default document names, looked up in the defaults directory.
const (
	DefaultStyleFile          = "style.json"
	DefaultMathJaxConfigFile  = "mathjax_config.json"
	DefaultMathJaxTypesetFile = "mathjax_typeset.json"
)

// Defaults points at the optional fallback documents for each slot.
// The diagram slot deliberately has no entry here: it never falls back.
type Defaults struct {
	// StylePaths are merged (first-listed wins) into the fallback style.
	StylePaths []string

	// MathJaxConfigPath and MathJaxTypesetPath are single fallback files.
	MathJaxConfigPath  string
	MathJaxTypesetPath string
}

// DirDefaults returns the conventional defaults rooted at dir.
func DirDefaults(dir string) Defaults {
	return Defaults{
		StylePaths:         []string{filepath.Join(dir, DefaultStyleFile)},
		MathJaxConfigPath:  filepath.Join(dir, DefaultMathJaxConfigFile),
		MathJaxTypesetPath: filepath.Join(dir, DefaultMathJaxTypesetFile),
	}
}

// ExecutableDefaults returns the conventional defaults rooted at the
// directory of the running executable. When the executable path cannot be
// determined the defaults point at nonexistent files, which the loader
// treats as silently absent.
func ExecutableDefaults() Defaults {
	exe, err := os.Executable()
	if err != nil {
		return Defaults{}
	}
	return DirDefaults(filepath.Dir(exe))
}

// Resolved is the merged configuration for one invocation. Each document
// slot carries an explicit presence flag; consumers must branch on it.
type Resolved struct {
	Diagram    document.Document
	HasDiagram bool

	Style    document.Document
	HasStyle bool

	MathJaxConfig    document.Document
	HasMathJaxConfig bool

	MathJaxTypeset    document.Document
	HasMathJaxTypeset bool

	// Output is the -o path; empty means no file is written.
	Output string

	// Write mirrors the -w flag: dump the rendered SVG to stdout.
	Write bool
}

// Assemble resolves all four configuration slots plus the output options
// from args, using loader for every file access. It never fails: a slot
// that cannot be resolved is absent, and any diagnostics were already
// emitted by the loader.
func Assemble(args []string, defaults Defaults, loader *document.Loader) Resolved {
	var r Resolved

	// Diagram: explicit only, no default.
	if path, ok := argv.ResolveSingle(DiagramFlags, args); ok {
		r.Diagram, r.HasDiagram = loader.Load(path)
	}

	// Style: explicit overlays merged first-listed-wins, layered over the
	// merged default styles.
	explicit, eok := loader.MergeMany(argv.ResolveAll(StyleFlags, args))
	fallback, fok := loader.MergeMany(defaults.StylePaths)
	switch {
	case eok && fok:
		r.Style, r.HasStyle = document.Merge(explicit, fallback), true
	case eok:
		r.Style, r.HasStyle = explicit, true
	case fok:
		r.Style, r.HasStyle = fallback, true
	}

	r.MathJaxConfig, r.HasMathJaxConfig = resolveWithDefault(
		MathJaxConfigFlags, args, defaults.MathJaxConfigPath, loader)
	r.MathJaxTypeset, r.HasMathJaxTypeset = resolveWithDefault(
		MathJaxTypesetFlags, args, defaults.MathJaxTypesetPath, loader)

	r.Output, _ = argv.ResolveSingle(OutputFlags, args)
	r.Write = argv.Present(WriteFlags, args)

	return r
}

// resolveWithDefault implements the single-value-with-default policy: an
// explicit path is loaded if given; a failed explicit load falls back to the
// default document; no explicit path goes straight to the default.
func resolveWithDefault(spellings, args []string, defaultPath string, loader *document.Loader) (document.Document, bool) {
	if path, ok := argv.ResolveSingle(spellings, args); ok {
		if doc, ok := loader.Load(path); ok {
			return doc, true
		}
	}
	if defaultPath == "" {
		return nil, false
	}
	return loader.LoadDefault(defaultPath)
}
