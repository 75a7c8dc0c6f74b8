// Package config provides configuration management.
//
// Values are resolved in order: defaults, config file (JSON, YAML or TOML by
// extension), then CLOUDFEE_* environment variables. Nested keys use an
// underscore in the environment, e.g. CLOUDFEE_SERVER_ADDR.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	apperrors "cloud-fee/internal/errors"
	"cloud-fee/internal/logging"
)

// EnvPrefix is the environment variable prefix
const EnvPrefix = "CLOUDFEE"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Sample is the default sweep for compare
	Sample SampleConfig `json:"sample" mapstructure:"sample"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" mapstructure:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// MaxSamplePoints caps count on compare requests
	MaxSamplePoints int `json:"max_sample_points" mapstructure:"max_sample_points"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format" mapstructure:"default_format"`

	// ShowDetails shows per-component breakdowns
	ShowDetails bool `json:"show_details" mapstructure:"show_details"`

	// Color enables colored terminal output
	Color bool `json:"color" mapstructure:"color"`
}

// SampleConfig is the x-axis sweep used when no flags are given
type SampleConfig struct {
	Step  float64 `json:"step" mapstructure:"step"`
	Count int     `json:"count" mapstructure:"count"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			MaxSamplePoints:     1000,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
			Color:         true,
		},
		Sample: SampleConfig{
			Step:  1_000_000,
			Count: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. An empty path or a missing file
// yields the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Config("error reading config file "+path, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, apperrors.Config("error decoding config", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values no command can work with
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return apperrors.Newf(apperrors.TypeConfig, "unsupported output format: %s", c.Output.DefaultFormat)
	}
	if c.Sample.Step <= 0 || c.Sample.Count <= 0 {
		return apperrors.New(apperrors.TypeConfig, "sample step and count must be positive")
	}
	if c.Server.MaxSamplePoints <= 0 {
		return apperrors.New(apperrors.TypeConfig, "server.max_sample_points must be positive")
	}
	return nil
}

// newViper registers every key with its default so AutomaticEnv can
// override it
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeoutSeconds)
	v.SetDefault("server.write_timeout_seconds", d.Server.WriteTimeoutSeconds)
	v.SetDefault("server.max_sample_points", d.Server.MaxSamplePoints)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("output.show_details", d.Output.ShowDetails)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("sample.step", d.Sample.Step)
	v.SetDefault("sample.count", d.Sample.Count)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
	return v
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
