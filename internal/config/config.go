// Package config loads and persists the rasr configuration from
// .rasr/config.json under the project root.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete rasr configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Detector DetectorConfig `json:"detector" mapstructure:"detector"`
	Index    IndexConfig    `json:"index" mapstructure:"index"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains source scanning configuration
type ScanConfig struct {
	// Ignore are glob patterns for paths to skip, in addition to the
	// built-in test/bench/example exclusion rules
	Ignore []string `json:"ignore" mapstructure:"ignore"`

	// IncludeTests disables the test/bench/example exclusion rules
	IncludeTests bool `json:"includeTests" mapstructure:"includeTests"`

	// MaxFileSizeBytes caps how large a single source file may be; larger
	// files are skipped
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// DetectorConfig contains pattern/style detection configuration
type DetectorConfig struct {
	// PatternThreshold is the minimum confidence for a design-pattern detection
	PatternThreshold float64 `json:"patternThreshold" mapstructure:"patternThreshold"`

	// StyleThreshold is the minimum confidence for an architecture-style detection
	StyleThreshold float64 `json:"styleThreshold" mapstructure:"styleThreshold"`

	// CatalogPaths are extra signature catalog files (.toml or .yaml) merged
	// on top of the built-in catalogs
	CatalogPaths []string `json:"catalogPaths" mapstructure:"catalogPaths"`
}

// IndexConfig contains semantic index configuration
type IndexConfig struct {
	// HotSpotLimit is how many top-degree entities to retain
	HotSpotLimit int `json:"hotSpotLimit" mapstructure:"hotSpotLimit"`

	// PublicAPIDisplayLimit caps the public API list in rendered output.
	// The index itself always carries the full list.
	PublicAPIDisplayLimit int `json:"publicApiDisplayLimit" mapstructure:"publicApiDisplayLimit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			Ignore:           []string{"target/**", ".git/**"},
			IncludeTests:     false,
			MaxFileSizeBytes: 1000000,
		},
		Detector: DetectorConfig{
			PatternThreshold: 0.2,
			StyleThreshold:   0.3,
			CatalogPaths:     []string{},
		},
		Index: IndexConfig{
			HotSpotLimit:          20,
			PublicAPIDisplayLimit: 50,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .rasr/config.json under projectRoot.
// A missing config file yields the defaults, not an error.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".rasr"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .rasr/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".rasr")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Detector.PatternThreshold < 0 || c.Detector.PatternThreshold > 1 {
		return &ConfigError{Field: "detector.patternThreshold", Message: "must be within [0,1]"}
	}
	if c.Detector.StyleThreshold < 0 || c.Detector.StyleThreshold > 1 {
		return &ConfigError{Field: "detector.styleThreshold", Message: "must be within [0,1]"}
	}
	if c.Index.HotSpotLimit < 0 {
		return &ConfigError{Field: "index.hotSpotLimit", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
