package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// fillCommand creates the fill command: resolve and auto-fill without emitting.
func (c *CLI) fillCommand() *cobra.Command {
	var (
		output string
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "fill [intent.json]",
		Short: "Place and fill the ring, writing absolute components",
		Long: `Place and fill the ring, writing absolute components.

The output is an intent graph in the absolute layout_components form with a
completed ring_config. Feeding it back to 'generate' reproduces the same
script without running placement again.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIntents,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFill(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.filled.json, - for stdout)")
	nodeFlag(cmd, &opts.Node, "process node override: T28, T180")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "resolve positions and corners only")

	return cmd
}

func (c *CLI) runFill(ctx context.Context, input, output string, opts pipeline.Options) error {
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
		return fmt.Errorf("fill: %w", err)
	}

	var buf bytes.Buffer
	if err := ring.WriteComponents(&buf, result.Ring, result.Components, result.Gaps); err != nil {
		return fmt.Errorf("encode components: %w", err)
	}

	path := outputPath(output, input, ".filled.json")
	if err := writeFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path == "-" {
		return nil
	}
	printSuccess("Placed %d components", len(result.Components))
	printFile(path)
	printStats(result.Stats, result.CacheInfo.ScriptHit)
	printNextStep("Generate the script", "ioring generate "+path)
	return nil
}
