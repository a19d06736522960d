package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutconf/internal/domain"
	m "gooze.dev/pkg/mutconf/internal/model"
)

var initMutatorFlag string
var initTestRunnerFlag string

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a descriptor file populated with defaults",
		Long: `Create a descriptor with the given mutator and test runner and every other
field at its default. The format follows the file extension (.yaml, .yml,
.json, .toml). Defaults to the first --config file. Existing files are
never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			target := firstPath(args)

			return workflow.Init(context.Background(), domain.InitArgs{
				Target:     target,
				Mutator:    viper.GetString(initMutatorKey),
				TestRunner: viper.GetString(initTestRunnerKey),
			})
		},
	}

	configureInitFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func configureInitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&initMutatorFlag, mutatorFlagName, viper.GetString(initMutatorKey), "mutator to write into the descriptor")
	bindFlagToConfig(cmd.Flags().Lookup(mutatorFlagName), initMutatorKey)

	cmd.Flags().StringVar(&initTestRunnerFlag, testRunnerFlagName, viper.GetString(initTestRunnerKey), "test runner to write into the descriptor")
	bindFlagToConfig(cmd.Flags().Lookup(testRunnerFlagName), initTestRunnerKey)
}

// firstPath returns the positional file if given, else the first --config file.
func firstPath(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	paths := descriptorPaths()
	if len(paths) == 0 {
		return m.Path(defaultDescriptorFile)
	}

	return paths[0]
}
