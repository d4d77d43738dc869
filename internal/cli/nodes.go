package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
)

// nodesCommand lists the supported process nodes.
func (c *CLI) nodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List supported process nodes and their constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := c.loader()
			var configs []*process.Config
			for _, node := range process.Supported() {
				cfg, err := loader.Load(node)
				if err != nil {
					return err
				}
				configs = append(configs, cfg)
			}
			nodesTable(os.Stdout, configs)
			return nil
		},
	}
}
