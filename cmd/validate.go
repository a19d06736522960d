package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutconf/internal/domain"
)

var validateParallelFlag int

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate descriptor files",
		Long: `Load every given descriptor file on its own and report each outcome.
Without arguments the --config files are validated. Exits non-zero when
any file fails.`,
		RunE: func(_ *cobra.Command, args []string) error {
			paths := parsePaths(args)
			if len(paths) == 0 {
				paths = descriptorPaths()
			}

			return workflow.Validate(context.Background(), domain.ValidateArgs{
				Paths:      paths,
				Parallel:   viper.GetInt(validateParallelKey),
				Strictness: strictness(),
			})
		},
	}

	configureValidateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func configureValidateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&validateParallelFlag, parallelFlagName, "p", viper.GetInt(validateParallelKey), "number of files validated concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), validateParallelKey)
}
