package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/mutconf/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-validate a descriptor every time it changes",
		Long: `Validate the descriptor once, then again after each write, until
interrupted. Defaults to the first --config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Watch(ctx, domain.WatchArgs{
				Path:       firstPath(args),
				Strictness: strictness(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
