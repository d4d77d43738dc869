package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
)

// batchEntry is one line of a batch report.
type batchEntry struct {
	RunID      string `json:"run_id,omitempty"`
	Input      string `json:"input"`
	Output     string `json:"output,omitempty"`
	Node       string `json:"node,omitempty"`
	Components int    `json:"components"`
	Commands   int    `json:"commands"`
	Cached     bool   `json:"cached,omitempty"`
	Err        string `json:"error,omitempty"`
}

// batchReport is written by --report.
type batchReport struct {
	ID       string        `json:"id"`
	Started  time.Time     `json:"started"`
	Duration string        `json:"duration"`
	Failed   int           `json:"failed"`
	Runs     []*batchEntry `json:"runs"`
}

type batchOpts struct {
	jobs   int
	outDir string
	report string
	opts   pipeline.Options
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	bo := batchOpts{jobs: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "batch [dir|intent.json...]",
		Short: "Generate scripts for many intent graphs concurrently",
		Long: `Generate scripts for many intent graphs concurrently.

Directories are expanded to the *.json files they contain. Each graph is an
independent run; a failing graph is reported and does not stop the others.
Scripts are written next to their input unless --out-dir is given.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeIntents,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), inputs, bo)
		},
	}

	cmd.Flags().IntVarP(&bo.jobs, "jobs", "j", bo.jobs, "number of graphs generated in parallel")
	cmd.Flags().StringVar(&bo.outDir, "out-dir", "", "write scripts into this directory")
	cmd.Flags().StringVar(&bo.report, "report", "", "write a JSON batch report to this file")
	nodeFlag(cmd, &bo.opts.Node, "process node override for every graph")
	cmd.Flags().BoolVar(&bo.opts.NoFill, "no-fill", false, "skip filler insertion")

	return cmd
}

// expandInputs resolves directories to their JSON files, sorted.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "batch input %s", arg)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		inputs = append(inputs, matches...)
	}
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no intent graphs found")
	}
	return inputs, nil
}

func (c *CLI) runBatch(ctx context.Context, inputs []string, bo batchOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	report := batchReport{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Runs:    make([]*batchEntry, len(inputs)),
	}
	logger.Info("starting batch", "id", report.ID[:8], "graphs", len(inputs), "jobs", bo.jobs)

	var (
		mu       sync.Mutex
		finished int
	)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating 0/%d...", len(inputs)))
	spinner.Start()

	g, gctx := errgroup.WithContext(ctx)
	if bo.jobs > 0 {
		g.SetLimit(bo.jobs)
	}
	for i, input := range inputs {
		entry := &batchEntry{Input: input}
		report.Runs[i] = entry
		g.Go(func() error {
			// Cancellation is the only error that stops the batch.
			if err := gctx.Err(); err != nil {
				return err
			}
			err := c.batchOne(gctx, runner, entry, bo)
			if err != nil {
				entry.Err = errors.UserMessage(err)
				logger.Warn("graph failed", "input", input, "err", err)
			}

			mu.Lock()
			defer mu.Unlock()
			finished++
			if err != nil {
				report.Failed++
			}
			spinner.Update("Generating %d/%d...", finished, len(inputs))
			return nil
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}
	report.Duration = time.Since(report.Started).Round(time.Millisecond).String()

	entries := make([]batchEntry, len(report.Runs))
	for i, e := range report.Runs {
		entries[i] = *e
	}
	batchTable(os.Stdout, entries)

	if bo.report != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := writeFile(bo.report, data); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		printFile(bo.report)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d graphs failed", report.Failed, len(inputs))
	}
	printSuccess("Generated %d scripts in %s", len(inputs), report.Duration)
	return nil
}

// batchOne generates one graph and records the outcome in entry.
func (c *CLI) batchOne(ctx context.Context, runner *pipeline.Runner, entry *batchEntry, bo batchOpts) error {
	g, err := readIntent(entry.Input)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, g, bo.opts)
	if err != nil {
		return err
	}
	entry.RunID = result.RunID[:8]
	entry.Node = string(result.Node)
	entry.Components = len(result.Components)
	entry.Commands = result.Stats.Commands
	entry.Cached = result.CacheInfo.ScriptHit

	out := outputPath("", entry.Input, "."+pipeline.FormatSkill)
	if bo.outDir != "" {
		out = filepath.Join(bo.outDir, filepath.Base(out))
	}
	if err := writeFile(out, result.Script.Bytes()); err != nil {
		return err
	}
	entry.Output = out
	return nil
}
