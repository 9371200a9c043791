// Package cli implements the rho command-line interface.
//
// rho has a single command surface: the raw argument vector is handed
// untouched to the resolution pipeline (flag parsing is disabled on the root
// command), which locates option values, loads and merges the referenced
// JSON documents, and renders the result. Dispatch precedence when several
// flags are present: help > version > diagram processing; an argument vector
// with none of those falls back to help.
//
// Logging uses charmbracelet/log. The logger is attached to the command
// context and accessible to the diagram path via loggerFromContext; all
// resolution diagnostics (missing files, malformed JSON) go through it.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/deverte/rho/pkg/argv"
	"github.com/deverte/rho/pkg/buildinfo"
	"github.com/deverte/rho/pkg/config"
)

const appName = "rho"

// usageLong documents the raw flag surface. cobra renders no flag help of
// its own here because flag parsing is disabled.
const usageLong = `rho resolves a diagram document and style/configuration overlays from the
command line, merges them, and renders the result to SVG.

Options:
  -c, --config <path>    mathjax configuration document
  -d, --diagram <path>   diagram document (required)
  -h, --help             show this help
  -o, --output <path>    write the rendered SVG to a file
  -s, --style <path>     style overlay document (repeatable; earlier wins)
  -t, --typeset <path>   mathjax typeset document
  -v, --version          print version information
  -w, --write            dump the rendered SVG to standard output

Single-valued options resolve to their last mention. Missing style, config,
and typeset documents fall back to style.json, mathjax_config.json, and
mathjax_typeset.json next to the rho executable.`

// Execute runs the rho CLI with the given argument vector (without the
// program name) and returns an error if the invocation fails.
// The argument vector is passed explicitly rather than read from os.Args
// so callers and tests control the full input.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// newRootCmd creates the root command. Flag parsing is disabled so the
// argument vector reaches the resolution pipeline verbatim; cobra only
// contributes the process skeleton and help rendering.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                appName,
		Short:              "rho renders diagram documents to SVG",
		Long:               usageLong,
		Version:            buildinfo.Version,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			set := loadSettings()
			level := charmlog.InfoLevel
			if set.Verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = withSettings(ctx, set)
			cmd.SetContext(ctx)
		},
		RunE: dispatch,
	}

	root.SetVersionTemplate(buildinfo.Template())
	return root
}

// dispatch routes the argument vector with the fixed flag precedence.
// The help and version paths read no files.
func dispatch(cmd *cobra.Command, args []string) error {
	switch {
	case argv.Present(config.HelpFlags, args):
		return cmd.Help()
	case argv.Present(config.VersionFlags, args):
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		return nil
	case argv.Present(config.DiagramFlags, args):
		return runDiagram(cmd, args)
	default:
		return cmd.Help()
	}
}
