package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/mutconf/internal/model"
)

// configSectionComments documents each top-level section of mutconf.yaml.
var configSectionComments = map[string]string{
	"descriptor": "Descriptor files used when a command gets none, layered in order.\n" +
		"lenient: warn instead of failing on missing referenced files and unknown keys.",
	"validate": "Number of descriptor files validated concurrently.",
	"watch":    "Quiet period after the last write before a descriptor is re-validated.",
	"init":     "Mutator and test runner written by `mutconf init`.",
	"convert":  "Target format (yaml, json, toml) and output file; empty prints YAML.",
	"log":      "Rotating log file; level is debug, info, warn or error.",
}

// configCmd represents the config command.
var configCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Generate a default mutconf.yaml configuration file",
		Long: `Create a mutconf.yaml in the current working directory populated with the
current CLI defaults, one comment per section, so it can be edited manually.
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			data, err := renderConfigFile()
			if err != nil {
				return err
			}

			if err := fsAdapter.CreateFile(m.Path(targetPath), data); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Created %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// renderConfigFile encodes the current settings with a head comment on every
// documented section.
func renderConfigFile() ([]byte, error) {
	settings := viper.AllSettings()

	// Durations are written the way they are typed, e.g. 200ms.
	if watch, ok := settings["watch"].(map[string]any); ok {
		watch["debounce"] = viper.GetDuration(watchDebounceKey).String()
	}

	var root yaml.Node
	if err := root.Encode(settings); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if comment, ok := configSectionComments[key.Value]; ok {
			key.HeadComment = comment
		}
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}
