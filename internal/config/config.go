// Package config provides centralized configuration management for isogen.
// It loads configuration from environment variables with defaults that
// reproduce a plain run in the working directory, and validates all settings
// on startup to fail fast on misconfiguration.
package config

// Config holds all generator configuration.
// All settings can be configured via environment variables.
type Config struct {
	Generate GenerateConfig
	Logging  LoggingConfig
}

// GenerateConfig holds input, output and dataset settings.
type GenerateConfig struct {
	// InputDir is the directory holding the CSV inputs (default: .)
	InputDir string `env:"ISOGEN_INPUT_DIR" default:"."`

	// OutputDir is the directory generated files are written to (default: .)
	OutputDir string `env:"ISOGEN_OUTPUT_DIR" default:"."`

	// Package is the package clause of generated files (default: iso)
	// GOPACKAGE is set by go generate.
	Package string `env:"ISOGEN_PACKAGE" envAlt:"GOPACKAGE" default:"iso"`

	// Charset is the input encoding: utf-8, latin1, windows-1252 (default: utf-8)
	Charset string `env:"ISOGEN_CHARSET" default:"utf-8"`

	// DatasetsFile is a YAML file whose datasets replace the built-ins
	DatasetsFile string `env:"ISOGEN_DATASETS_FILE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File additionally writes logs to a rotated file when set
	File string `env:"LOG_FILE"`

	// MaxSizeMB is the size at which the log file is rotated (default: 10)
	MaxSizeMB int `env:"LOG_MAX_SIZE_MB" default:"10"`
}
