//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Portions copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for marginscope.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for marginscope.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Dataset is the path to the transaction extract CSV.
	Dataset string `mapstructure:"dataset"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// GenerateConfig holds configuration for sample extract generation.
type GenerateConfig struct {
	// Rows is the number of line items to generate.
	Rows int `mapstructure:"rows"`

	// Seed seeds the generator for reproducible output (0 = random).
	Seed uint64 `mapstructure:"seed"`

	// Output is the path of the CSV file to write.
	Output string `mapstructure:"output"`
}

// LoadConfig holds configuration for the warehouse load.
type LoadConfig struct {
	// DropExisting drops an existing transactions schema before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ReportConfig holds configuration for report runs.
type ReportConfig struct {
	// Source selects where records come from: "csv" or "warehouse".
	Source string `mapstructure:"source"`

	// Format selects output rendering: "table", "csv" or "json".
	Format string `mapstructure:"format"`

	// Output is the directory for csv/json report files.
	Output string `mapstructure:"output"`

	// Parallel runs the report computations concurrently.
	Parallel bool `mapstructure:"parallel"`
}

// ServeConfig holds configuration for the report HTTP API.
type ServeConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`

	// Source selects where records come from: "csv" or "warehouse".
	Source string `mapstructure:"source"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dataset:  "transactions.csv",
		LogLevel: "info",
		Generate: GenerateConfig{
			Rows:   10000,
			Output: "transactions.csv",
		},
		Report: ReportConfig{
			Source: "csv",
			Format: "table",
			Output: "reports",
		},
		Serve: ServeConfig{
			Listen: ":8080",
			Source: "csv",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./marginscope.yaml
// 3. ~/.config/marginscope/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("marginscope")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "marginscope"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// validSource reports whether s names a supported record source.
func validSource(s string) bool {
	return s == "csv" || s == "warehouse"
}

// validateSource checks source-specific requirements shared by the
// report and serve commands.
func (c *Config) validateSource(source string) error {
	if !validSource(source) {
		return fmt.Errorf("source must be 'csv' or 'warehouse'")
	}
	if source == "warehouse" && c.Connection == "" {
		return fmt.Errorf("connection string is required for the warehouse source")
	}
	if source == "csv" && c.Dataset == "" {
		return fmt.Errorf("dataset path is required for the csv source")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Generate.Output == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Dataset == "" {
		return fmt.Errorf("dataset path is required")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.validateSource(c.Report.Source); err != nil {
		return err
	}
	switch c.Report.Format {
	case "table":
	case "csv", "json":
		if c.Report.Output == "" {
			return fmt.Errorf("output directory is required for %s format", c.Report.Format)
		}
	default:
		return fmt.Errorf("format must be 'table', 'csv' or 'json'")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if c.Serve.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return c.validateSource(c.Serve.Source)
}
