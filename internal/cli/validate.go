package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	opts := pipeline.Options{Validate: true}

	cmd := &cobra.Command{
		Use:   "validate [intent.json]",
		Short: "Place the ring and run structural checks",
		Long: `Place the ring and run structural checks.

Checks unique and well-formed instance names, one corner cell per chip
corner, pads inside the chip outline, no overlapping cells on a side, and
that every pad device belongs to the node's library. Unknown devices are
reported as warnings; everything else fails the report.

No design-rule checking is performed.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIntents,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], opts)
		},
	}

	nodeFlag(cmd, &opts.Node, "process node override: T28, T180")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "validate the ring before filling")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, opts pipeline.Options) error {
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
		return fmt.Errorf("validate: %w", err)
	}

	report := result.Report
	if len(report.Diagnostics) > 0 {
		reportTable(os.Stdout, report)
	}
	if !report.Pass {
		printError("%s ring failed validation", nodeLabel(result.Node))
		return errors.New(errors.ErrCodeInvalidPlacement,
			"%d error(s), %d warning(s)", len(report.Errors()), len(report.Warnings()))
	}
	if n := len(report.Warnings()); n > 0 {
		printWarning("%s ring passed with %d warning(s)", nodeLabel(result.Node), n)
		return nil
	}
	printSuccess("%s ring passed validation", nodeLabel(result.Node))
	printStats(result.Stats, result.CacheInfo.ScriptHit)
	return nil
}
