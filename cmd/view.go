package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/mutconf/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective descriptor",
		Long:  "Load the --config files, layered in order, and show every resolved setting.\n\n" + layeringHelp,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				Paths:      descriptorPaths(),
				Strictness: strictness(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
