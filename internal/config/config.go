// Package config reads grader settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvDataFile  = "AUTOGRADE_DATA_FILE"
	EnvDatabase  = "AUTOGRADE_DB"
	EnvMaxScore  = "AUTOGRADE_MAX_SCORE"
	EnvLogLevel  = "AUTOGRADE_LOG_LEVEL"
	EnvLogFormat = "AUTOGRADE_LOG_FORMAT"
	EnvLogOutput = "AUTOGRADE_LOG_OUTPUT"
)

// DefaultMaxScore is awarded when every test passes and neither the
// manifest nor the environment says otherwise.
const DefaultMaxScore = 20

// Config holds grader settings. Command-line flags take precedence.
type Config struct {
	DataFile  string
	Database  string
	MaxScore  float64
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataFile:  "data.json",
		MaxScore:  DefaultMaxScore,
		LogLevel:  "warn",
		LogFormat: "console",
		LogOutput: "stderr",
	}
}

// Load seeds the environment from envFiles, skipping files that do not
// exist, then reads the settings. Variables already set in the environment
// win over values from the files.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv reads settings from the environment over the defaults.
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	cfg.Database = os.Getenv(EnvDatabase)
	if v := os.Getenv(EnvMaxScore); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score <= 0 {
			return nil, fmt.Errorf("%s must be a positive number, got %q", EnvMaxScore, v)
		}
		cfg.MaxScore = score
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvLogOutput); v != "" {
		cfg.LogOutput = v
	}
	return cfg, nil
}
