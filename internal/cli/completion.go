package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ioring.

Bash:
  $ source <(ioring completion bash)

Zsh:
  $ ioring completion zsh > "${fpath[1]}/_ioring"

Fish:
  $ ioring completion fish > ~/.config/fish/completions/ioring.fish

PowerShell:
  PS> ioring completion powershell | Out-String | Invoke-Expression

Intent graph arguments complete to *.json files and --node to the
supported process nodes.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// nodeFlag registers --node and its completion on cmd.
func nodeFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVar(target, "node", "", usage)
	_ = cmd.RegisterFlagCompletionFunc("node", completeNodes)
}

// completeNodes offers the supported process nodes.
func completeNodes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var nodes []string
	for _, n := range process.Supported() {
		nodes = append(nodes, n.String())
	}
	return nodes, cobra.ShellCompDirectiveNoFileComp
}

// completeIntents restricts positional completion to JSON files.
func completeIntents(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
