package model

import (
	"time"

	"github.com/ppiankov/chemscreen/internal/pauling"
)

// Config is the full chemscreen configuration as read from
// ~/.chemscreen/config.yaml, CHEMSCREEN_* variables and flags
type Config struct {
	Screening   ScreeningConfig   `json:"screening" yaml:"screening" mapstructure:"screening"`
	Validity    ValidityConfig    `json:"validity" yaml:"validity" mapstructure:"validity"`
	Pauling     pauling.Rule      `json:"pauling" yaml:"pauling" mapstructure:"pauling"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
}

// ScreeningConfig holds composition filter defaults
type ScreeningConfig struct {
	Threshold     int    `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	Source        string `json:"source" yaml:"source" mapstructure:"source"`
	SpeciesUnique bool   `json:"species_unique" yaml:"species_unique" mapstructure:"species_unique"`
}

// ValidityConfig holds validity classifier defaults
type ValidityConfig struct {
	Source                 string  `json:"source" yaml:"source" mapstructure:"source"`
	UsePaulingTest         bool    `json:"use_pauling_test" yaml:"use_pauling_test" mapstructure:"use_pauling_test"`
	IncludeAlloys          bool    `json:"include_alloys" yaml:"include_alloys" mapstructure:"include_alloys"`
	CheckMetallicity       bool    `json:"check_metallicity" yaml:"check_metallicity" mapstructure:"check_metallicity"`
	MetallicityThreshold   float64 `json:"metallicity_threshold" yaml:"metallicity_threshold" mapstructure:"metallicity_threshold"`
	CheckIntermetallic     bool    `json:"check_intermetallic" yaml:"check_intermetallic" mapstructure:"check_intermetallic"`
	IntermetallicThreshold float64 `json:"intermetallic_threshold" yaml:"intermetallic_threshold" mapstructure:"intermetallic_threshold"`
	MixedValence           bool    `json:"mixed_valence" yaml:"mixed_valence" mapstructure:"mixed_valence"`
	MaxMixedStates         int     `json:"max_mixed_states" yaml:"max_mixed_states" mapstructure:"max_mixed_states"`
}

// ConcurrencyConfig bounds the batch and space drivers
type ConcurrencyConfig struct {
	Workers           int     `json:"workers" yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 = unlimited
	Burst             int     `json:"burst" yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the verdict cache
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `json:"dir" yaml:"dir" mapstructure:"dir"` // empty = ~/.chemscreen/cache
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `json:"format" yaml:"format" mapstructure:"format"` // table, json, yaml, md
	Verbose bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Screening: ScreeningConfig{
			Threshold:     5,
			Source:        "icsd24",
			SpeciesUnique: true,
		},
		Validity: ValidityConfig{
			Source:                 "icsd24",
			UsePaulingTest:         true,
			IncludeAlloys:          true,
			MetallicityThreshold:   0.7,
			IntermetallicThreshold: 0.7,
			MaxMixedStates:         2,
		},
		Pauling: pauling.DefaultRule(),
		Concurrency: ConcurrencyConfig{
			Workers: 4,
			Burst:   1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}
