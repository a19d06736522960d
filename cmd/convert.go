package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/mutconf/internal/domain"
	m "gooze.dev/pkg/mutconf/internal/model"
)

var convertToFlag string
var convertOutFlag string

// convertCmd represents the convert command.
var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-emit the effective descriptor in another format",
		Long: `Load the --config files and write the resolved descriptor, with every
default spelled out, as YAML, JSON or TOML. Without --to the format follows
the --out extension, or YAML when printing.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var format m.Format

			if to := viper.GetString(convertToKey); to != "" {
				parsed, err := m.ParseFormat(to)
				if err != nil {
					return err
				}

				format = parsed
			}

			return workflow.Convert(context.Background(), domain.ConvertArgs{
				Paths:      descriptorPaths(),
				To:         format,
				Output:     m.Path(viper.GetString(convertOutKey)),
				Strictness: strictness(),
			})
		},
	}

	configureConvertFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func configureConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&convertToFlag, toFlagName, viper.GetString(convertToKey), "output format: yaml, json or toml")
	bindFlagToConfig(cmd.Flags().Lookup(toFlagName), convertToKey)

	cmd.Flags().StringVarP(&convertOutFlag, outFlagName, "o", viper.GetString(convertOutKey), "write to this file instead of stdout")
	bindFlagToConfig(cmd.Flags().Lookup(outFlagName), convertOutKey)
}
