// Package cmd provides the root command and CLI setup for mutconf.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutconf/internal/adapter"
	"gooze.dev/pkg/mutconf/internal/controller"
	"gooze.dev/pkg/mutconf/internal/domain"
	m "gooze.dev/pkg/mutconf/internal/model"
)

var fsAdapter adapter.DocumentFS
var codec adapter.DocumentCodec
var watcher adapter.FileWatcher
var loader domain.Loader
var serializer domain.Serializer
var workflow domain.Workflow
var ui controller.UI

// descriptorPathsFlag holds the descriptor files given with --config, in layering order.
var descriptorPathsFlag []string

// lenientFlag defers missing referenced files and unknown keys to the host tool.
var lenientFlag bool

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalDocumentFS()
	codec = adapter.NewLocalDocumentCodec()
	watcher = adapter.NewFSNotifyWatcher(viper.GetDuration(watchDebounceKey))
	loader = domain.NewLoader(fsAdapter, codec)
	serializer = domain.NewSerializer(codec)
	workflow = domain.NewWorkflow(
		fsAdapter,
		watcher,
		loader,
		serializer,
		ui,
	)
}

const layeringHelp = `Descriptor files are given with --config and can be repeated:
  -c mutation.conf.yaml                 single descriptor
  -c base.yaml -c local.yaml            later files override earlier ones
Mappings merge key by key, sequences are replaced as a whole.`

const rootLongDescription = `mutconf loads, validates and converts the configuration descriptor a
mutation-testing host reads before a run: mutator, package manager,
reporters, test runner, transpilers, test framework, coverage analysis
and per-tool options such as babel.optionsFile.

` + layeringHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutconf",
		Short: "Mutation testing configuration descriptor tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

// newRootCmd builds a fresh root command with its persistent flags, for tests
// that attach a single subcommand.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringArrayVarP(
			&descriptorPathsFlag, configFlagName, "c",
			viper.GetStringSlice(descriptorPathsKey),
			"descriptor file to load (can be repeated to layer files)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(configFlagName), descriptorPathsKey)

	cmd.PersistentFlags().BoolVar(&lenientFlag, lenientFlagName, viper.GetBool(descriptorLenientKey), "warn instead of failing on missing referenced files and unknown keys")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(lenientFlagName), descriptorLenientKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// descriptorPaths returns the --config files, falling back to the configured default.
func descriptorPaths() []m.Path {
	return parsePaths(viper.GetStringSlice(descriptorPathsKey))
}

func strictness() domain.Strictness {
	if viper.GetBool(descriptorLenientKey) {
		return domain.Lenient
	}

	return domain.Strict
}
