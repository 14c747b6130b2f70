package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/spf13/viper"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

type Config struct {
	Engine    string `mapstructure:"engine"`
	Output    string `mapstructure:"output"`
	Database  string `mapstructure:"database"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Workers   int    `mapstructure:"workers"`
	Hacks     bool   `mapstructure:"hacks"`
}

// Load reads configuration from cfgFile, or from doomarc.yaml in the home
// or working directory when cfgFile is empty. A missing default file is
// not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("engine", "")
	v.SetDefault("output", "out")
	v.SetDefault("database", "doomarc.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("hacks", true)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName("doomarc")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that flags may have overridden after Load
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("log level %q must be one of %v", c.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("log format %q must be one of %v", c.LogFormat, logFormats)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Output == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Database == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	return nil
}
