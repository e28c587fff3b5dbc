// Package config loads run settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "STREAMPREP"

// Config holds everything a pipeline run needs.
type Config struct {
	ArchivePath string `envconfig:"ARCHIVE_PATH" default:"data/Most Streamed Spotify Songs 2024.csv.zip" validate:"required"`
	Entry       string `envconfig:"ENTRY" default:"Most Streamed Spotify Songs 2024.csv" validate:"required"`
	Encoding    string `envconfig:"ENCODING" default:"ISO-8859-1" validate:"required"`

	ImageDir        string `envconfig:"IMAGE_DIR" default:"image" validate:"required"`
	MissingPlot     string `envconfig:"MISSING_PLOT" default:"missing_values_plot.png" validate:"required,endswith=.png"`
	CorrelationPlot string `envconfig:"CORRELATION_PLOT" default:"correlation_matrix.png" validate:"required,endswith=.png"`

	MissingThreshold     float64 `envconfig:"MISSING_THRESHOLD" default:"40" validate:"gte=0,lte=100"`
	CorrelationThreshold float64 `envconfig:"CORRELATION_THRESHOLD" default:"0.70" validate:"gte=-1,lte=1"`

	Logging LoggingConfig `envconfig:"LOG"`
	Trace   bool          `envconfig:"TRACE" default:"false"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads an optional .env file from the working directory, then the
// STREAMPREP_* environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges and required values.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
