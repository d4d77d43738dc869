package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
)

// visualizeCommand creates the visualize command for drawing a placed ring.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output string
		format string
		dot    bool
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize [intent.json]",
		Short: "Draw the placed ring",
		Long: `Draw the placed ring.

Every pad, corner, filler and separator is pinned at its body centre and
coloured by voltage domain. SVG is rendered with Graphviz; PNG and PDF are
converted from the SVG with rsvg-convert, which must be on PATH.

With --dot the Graphviz source is written instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIntents,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dot {
				format = pipeline.FormatDOT
			}
			if format == "" {
				format = formatFromPath(output)
			}
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], output, format, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), png, pdf, dot")
	cmd.Flags().BoolVar(&dot, "dot", false, "write the Graphviz source")
	nodeFlag(cmd, &opts.Node, "process node override: T28, T180")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "draw the ring before filling")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input, output, format string, opts pipeline.Options) error {
	g, err := readIntent(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	result, err := runner.Plan(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	artifacts, err := runner.Render(ctx, result, []string{format})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	path := outputPath(output, input, "."+format)
	if err := writeFile(path, artifacts[format]); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path != "-" {
		printSuccess("Rendered %s ring", nodeLabel(result.Node))
		printFile(path)
	}
	return nil
}

// formatFromPath picks the render format from an output extension,
// defaulting to SVG.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatDOT:
		return ext
	}
	return pipeline.FormatSVG
}
