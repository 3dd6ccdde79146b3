package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/report"
	"github.com/ppiankov/chemscreen/internal/screen"
)

const version = "chemscreen v0.3.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chemscreen",
	Short: "chemscreen - charge-neutrality and electronegativity screening of compositions",
	Long: `chemscreen screens chemical compositions with simple chemical rules.

It enumerates charge-neutral ratios for a set of elements, checks that
cations are less electronegative than anions, and classifies formulas as
plausible or implausible, with optional handling of alloys, intermetallics
and mixed valence.

A passing composition is plausible, not proven to exist.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of chemscreen.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.chemscreen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: table, json, yaml, md (default from config)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".chemscreen"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	// CHEMSCREEN_VALIDITY_SOURCE overrides validity.source
	viper.SetEnvPrefix("CHEMSCREEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment variables can reach it
func setDefaults(cfg *model.Config) {
	defaults := map[string]interface{}{
		"screening.threshold":              cfg.Screening.Threshold,
		"screening.source":                 cfg.Screening.Source,
		"screening.species_unique":         cfg.Screening.SpeciesUnique,
		"validity.source":                  cfg.Validity.Source,
		"validity.use_pauling_test":        cfg.Validity.UsePaulingTest,
		"validity.include_alloys":          cfg.Validity.IncludeAlloys,
		"validity.check_metallicity":       cfg.Validity.CheckMetallicity,
		"validity.metallicity_threshold":   cfg.Validity.MetallicityThreshold,
		"validity.check_intermetallic":     cfg.Validity.CheckIntermetallic,
		"validity.intermetallic_threshold": cfg.Validity.IntermetallicThreshold,
		"validity.mixed_valence":           cfg.Validity.MixedValence,
		"validity.max_mixed_states":        cfg.Validity.MaxMixedStates,
		"pauling.threshold":                cfg.Pauling.Threshold,
		"pauling.repeat_anions":            cfg.Pauling.RepeatAnions,
		"pauling.repeat_cations":           cfg.Pauling.RepeatCations,
		"concurrency.workers":              cfg.Concurrency.Workers,
		"concurrency.requests_per_second":  cfg.Concurrency.RequestsPerSecond,
		"concurrency.burst":                cfg.Concurrency.Burst,
		"cache.enabled":                    cfg.Cache.Enabled,
		"cache.dir":                        cfg.Cache.Dir,
		"cache.memory_ttl":                 cfg.Cache.MemoryTTL,
		"cache.disk_ttl":                   cfg.Cache.DiskTTL,
		"output.format":                    cfg.Output.Format,
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

// loadConfig merges defaults, config file, environment and bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	return cfg, nil
}

// newLogger logs warnings to stderr, or everything down to debug with
// --verbose
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !cfg.Output.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// env bundles what every screening command needs
type env struct {
	cfg      *model.Config
	logger   *zap.Logger
	screener *screen.Screener
	renderer *report.Renderer
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := element.New(element.WithCustomTableTTL(cfg.Cache.MemoryTTL))
	if err != nil {
		return nil, errors.Wrap(err, "load element data")
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		screener: screen.New(provider, screen.WithLogger(logger)),
		renderer: report.New(cmd.OutOrStdout(), format),
	}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}
