// Package config loads run defaults and builds the logger.
//
// Defaults are layered: built-in values, then an optional
// xes-converter.yaml config file, then XES_-prefixed environment
// variables. CLI flags override all of it at the call site.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the run defaults not tied to a specific rules file.
type Config struct {
	// Delimiter is the CSV field delimiter.
	Delimiter string `mapstructure:"delimiter"`

	Logger LoggerConfig `mapstructure:"logger"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load merges defaults, the optional config file, and environment
// variables into a Config. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("xes-converter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("xes")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("delimiter", ";")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// NewLogger builds a zap logger per the config. Console format logs to
// stderr so the converted document can go to stdout.
func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
