package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/mutconf/internal/domain"
	m "gooze.dev/pkg/mutconf/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two descriptors",
		Long: `Load both descriptors and print a unified diff of their resolved settings.
Files in different formats compare equal when they resolve to the same
descriptor.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Diff(context.Background(), domain.DiffArgs{
				Left:       m.Path(args[0]),
				Right:      m.Path(args[1]),
				Strictness: strictness(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
