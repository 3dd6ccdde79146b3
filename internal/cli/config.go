package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chemscreen/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chemscreen configuration",
	Long: `Manage chemscreen configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CHEMSCREEN_*)
3. Config file (~/.chemscreen/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file, env vars and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "marshal config")
		}

		_, err = cmd.OutOrStdout().Write(yamlData)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.chemscreen/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "find home directory")
		}

		configPath := filepath.Join(home, ".chemscreen", "config.yaml")
		if cfgFile != "" {
			configPath = cfgFile
		}

		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "\nTo view the configuration:\n  chemscreen config show\n")
		return nil
	},
}

// writeDefaultConfig writes the built-in defaults to path, refusing to
// overwrite an existing file
func writeDefaultConfig(path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return errors.WithHint(
			errors.Newf("config file already exists: %s", path),
			"use 'chemscreen config show' to view it, or delete it first to recreate",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config file")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close config file")
		}
	}()

	header := `# chemscreen configuration
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (CHEMSCREEN_VALIDITY_SOURCE, ...)
#   3. This config file
#   4. Built-in defaults
#
# Oxidation-state sources: smact14, icsd16, icsd24, pymatgen_sp, wiki,
# or a path to a file of "SYMBOL state1 state2 ..." lines.

`
	if _, err := f.WriteString(header); err != nil {
		return errors.Wrap(err, "write config")
	}
	if _, err := f.Write(yamlData); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
