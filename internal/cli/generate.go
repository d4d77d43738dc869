package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
)

// generateCommand creates the generate command: intent graph to SKILL script.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		summary bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "generate [intent.json]",
		Short: "Generate the SKILL script for an I/O ring",
		Long: `Generate the SKILL script for an I/O ring.

The intent graph is resolved to absolute positions, corner cells are added,
every gap between pads is filled with fillers or separators, and the
resulting ring is emitted as SKILL commands for the layout editor.

The process node comes from --node, then from ring_config.process_node in
the intent graph, and defaults to T28. Scripts are cached keyed on the intent
graph and the node document.`,
		Example: `  ioring generate chip.json
  ioring generate chip.json --node 180nm -o out/chip.il
  ioring generate chip.json --no-fill --summary`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIntents,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], output, summary, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.il, - for stdout)")
	nodeFlag(cmd, &opts.Node, "process node override: T28, T180 (loose spellings accepted)")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "skip filler insertion (corner cells are still added)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when a cached script exists")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a per-stage summary table")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input, output string, summary bool, opts pipeline.Options) error {
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
	prog := newProgress(opts.Logger)

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	path := outputPath(output, input, "."+pipeline.FormatSkill)
	if err := writeFile(path, result.Script.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path == "-" {
		return nil
	}

	prog.done(fmt.Sprintf("Generated %s ring for %s", result.Node, input),
		"run", result.RunID, "components", len(result.Components), "commands", result.Stats.Commands)
	printSuccess("Generated %s", path)
	printStats(result.Stats, result.CacheInfo.ScriptHit)
	if summary {
		printNewline()
		summaryTable(os.Stdout, result)
	}
	return nil
}
