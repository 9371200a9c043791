package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deverte/rho/pkg/config"
	"github.com/deverte/rho/pkg/document"
	"github.com/deverte/rho/pkg/errors"
	"github.com/deverte/rho/pkg/render"
	"github.com/deverte/rho/pkg/render/graphviz"
)

// runDiagram is the diagram-processing path: resolve the configuration from
// the argument vector, construct the diagram, generate SVG, and deliver it
// to the requested sinks.
//
// Every resolution or rendering failure here is terminal for the operation
// but not for the process: it is diagnosed and the command returns nil so
// the process exits cleanly. The only error propagated upward is context
// cancellation, which keeps the SIGINT exit convention intact.
func runDiagram(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	defaults := config.ExecutableDefaults()
	if dir := settingsFromContext(ctx).DefaultsDir; dir != "" {
		defaults = config.DirDefaults(dir)
	}

	loader := document.NewLoader(logger)
	resolved := config.Assemble(args, defaults, loader)

	if !resolved.HasDiagram {
		printError("no diagram document could be resolved")
		return nil
	}
	logger.Debugf("Resolved slots: style=%v mathjax-config=%v mathjax-typeset=%v",
		resolved.HasStyle, resolved.HasMathJaxConfig, resolved.HasMathJaxTypeset)

	dgm, err := graphviz.New().NewDiagram(resolved.Diagram, render.Options{
		Style:          resolved.Style,
		MathJaxConfig:  resolved.MathJaxConfig,
		MathJaxTypeset: resolved.MathJaxTypeset,
	})
	if err != nil {
		printError("diagram rejected: %s", errors.UserMessage(err))
		return nil
	}

	p := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	result, err := dgm.Generate(ctx)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		if stderrors.Is(err, context.Canceled) {
			return err
		}
		logger.Errorf("render: %v", err)
		return nil
	}
	spinner.Stop()
	p.done("Rendered diagram")

	svg := result.SVG()

	// A failed file write must not affect the already-computed result, so
	// the -w dump below still happens.
	if resolved.Output != "" {
		if err := os.WriteFile(resolved.Output, []byte(svg), 0o644); err != nil {
			printError("cannot write %s: %v", resolved.Output, err)
		} else {
			printSuccess("Wrote rendered diagram")
			printFile(resolved.Output)
		}
	}

	if resolved.Write {
		fmt.Fprintln(cmd.OutOrStdout(), svg)
	}

	if resolved.Output == "" && !resolved.Write {
		logger.Infof("Rendered %d bytes of SVG; no output requested", len(svg))
	}
	return nil
}
