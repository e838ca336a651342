// Package config provides 12-factor configuration management for the
// converter.
//
// Configuration is loaded from environment variables with sensible defaults,
// optionally overlaid by a YAML run file, and finally by CLI flags.
//
// Configuration Sections:
//   - Mode/Input/Output: what to convert and where it goes
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("converting %s in %s mode\n", cfg.Input, cfg.Mode)
//
// Environment Variables:
//   - PACKMIGRATE_MODE, PACKMIGRATE_INPUT, PACKMIGRATE_OUTPUT
//   - PACKMIGRATE_KEEP_TEMP
//   - PACKMIGRATE_LOG_LEVEL, PACKMIGRATE_LOG_CONSOLE
package config
