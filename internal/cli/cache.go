package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
)

// cacheCommand groups the local script cache subcommands. A shared Redis
// cache is never touched; its entries expire on their own.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local script cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all cached scripts and placements",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return runCacheClear() },
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show entry counts and disk usage",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return runCacheInfo() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				fmt.Println(dir)
				return nil
			},
		},
	)
	return cmd
}

// localCache opens the file cache, or returns nil when it was never created.
func localCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func runCacheClear() error {
	fc, err := localCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Removed %d cached entries", n)
	printDetail("%s", fc.Dir())
	return nil
}

func runCacheInfo() error {
	fc, err := localCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	st, err := fc.Stats()
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	printInfo("%s entries, %s expired, %s",
		styleValue.Render(fmt.Sprint(st.Entries)),
		styleValue.Render(fmt.Sprint(st.Expired)),
		styleValue.Render(humanBytes(st.Bytes)))
	printDetail("%s", fc.Dir())
	return nil
}

// humanBytes formats n with a binary unit, e.g. "12.5 KiB".
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
