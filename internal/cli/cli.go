// Package cli implements the ioring command-line interface.
//
// This package provides commands for turning intent graphs into SKILL
// layout scripts, inspecting the placed ring, and managing the script
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Resolve, fill and emit the SKILL script for an intent graph
//   - fill: Resolve and auto-fill, writing the absolute component list
//   - validate: Run the structural validator and print a report
//   - visualize: Draw the placed ring as SVG or DOT
//   - nodes: List supported process nodes and their constants
//   - batch: Generate many intent graphs concurrently
//   - cache: Manage the script cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/buildinfo"
	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ioring"

	// envRedisAddr selects the shared Redis cache when --redis-addr is unset.
	envRedisAddr = "IORING_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags.
	configDir string
	redisAddr string
	noCache   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ioring generates I/O pad ring layouts as SKILL scripts",
		Long:         `ioring turns a declarative intent graph (pads, their sides and voltage domains) into a complete I/O ring for the T28 and T180 process nodes: absolute placement, corner cells, fillers and separators, and the SKILL commands that build it in the layout editor.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", os.Getenv(process.EnvConfigDir), "directory with t28.toml / t180.toml overriding the built-in node documents")
	flags.StringVar(&c.redisAddr, "redis-addr", os.Getenv(envRedisAddr), "use a shared Redis script cache at host:port")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the script cache")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.fillCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, loggerFromContext(ctx), c.loader()), nil
}

// loader returns the configuration loader for the selected config directory.
func (c *CLI) loader() *process.Loader {
	if c.configDir == "" {
		return process.DefaultLoader()
	}
	return process.NewLoader(c.configDir)
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ioring/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file from the input when -o is not given:
// "chip/intent.json" with ext ".il" becomes "chip/intent.il".
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// =============================================================================
// IO Helpers
// =============================================================================

// readIntent loads an intent graph, mapping a missing file to FILE_NOT_FOUND.
func readIntent(path string) (*ring.IntentGraph, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "intent graph not found: %s", path)
	}
	return ring.ReadIntentFile(path)
}

// writeFile writes data to path, or to stdout when path is "-".
func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
