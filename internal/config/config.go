// =============================================================================
// Employee Records - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional configuration file.
// Every setting has a default, so the tool runs without any file; a file
// only needs the keys it changes.
//
// CONFIGURATION FILE (YAML):
//   output_path: output.json
//   payout_pattern: hourly_rate|rate|salary
//   indent: 4
//   log_level: warn
//
// Command-line flags override the values loaded here.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/ginjaninja78/employee-records/internal/jsonwriter"
	"github.com/ginjaninja78/employee-records/internal/payout"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultOutputPath is the output file, relative to the working directory.
	DefaultOutputPath = "output.json"

	// DefaultLogLevel keeps routine runs quiet on standard error.
	DefaultLogLevel = "warn"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputPath is the JSON file the records are written to.
	// Placeholders:
	//   {uuid} - A random UUID
	//   {date} - Current date (YYYYMMDD)
	// Default: "output.json"
	OutputPath string `yaml:"output_path"`

	// Indent is the number of spaces per JSON nesting level.
	// A pointer so that an explicit 0 can be told apart from an unset value.
	// Default: 4
	Indent *int `yaml:"indent"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// PayoutPattern is the regular expression that locates the rate field.
	// Default: "hourly_rate|rate|salary"
	PayoutPattern string `yaml:"payout_pattern"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging on standard error.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`
}

// Default returns a configuration holding only default values.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// IndentWidth returns the configured indent, or the default when unset.
func (c *MainConfig) IndentWidth() int {
	if c.Indent == nil {
		return jsonwriter.DefaultIndent
	}
	return *c.Indent
}

// Level returns the parsed log level.
func (c *MainConfig) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}

// =============================================================================
// LOADING
// =============================================================================

// LoadMainConfig loads the configuration file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path skips
//     loading and returns the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed, or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputPath == "" {
		config.OutputPath = DefaultOutputPath
	}
	if config.Indent == nil {
		indent := jsonwriter.DefaultIndent
		config.Indent = &indent
	}
	if config.PayoutPattern == "" {
		config.PayoutPattern = payout.DefaultPattern
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration values.
func (c *MainConfig) Validate() error {
	if _, err := regexp.Compile(c.PayoutPattern); err != nil {
		return fmt.Errorf("payout_pattern: %w", err)
	}
	if c.Indent != nil && *c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", *c.Indent)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
