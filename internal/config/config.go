// Package config holds run configuration for the converter. Values come
// from environment variables (PACKMIGRATE_*), optionally overridden by a
// YAML run file and then by CLI flags.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all converter configuration.
type Config struct {
	Mode     string `envconfig:"MODE" default:"cmd" yaml:"mode"`
	Input    string `envconfig:"INPUT" default:"input" yaml:"input"`
	Output   string `envconfig:"OUTPUT" default:"" yaml:"output"`
	KeepTemp bool   `envconfig:"KEEP_TEMP" default:"false" yaml:"keep_temp"`
	Logging  LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level"`
	Console bool   `envconfig:"LOG_CONSOLE" default:"true" yaml:"log_console"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("packmigrate", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns
// defaults if that fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Mode:  "cmd",
		Input: "input",
		Logging: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// ApplyFile overlays values from a YAML run file onto the config. Absent
// keys keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
