// Package config provides configuration management for a loom load session.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// LogLevel selects the verbosity of the session's structured logging.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether the log level is one logrus recognizes.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	default:
		return false
	}
}

// Config represents the complete configuration for one load session.
type Config struct {
	Session SessionConfig `toml:"session"`
	Logging LoggingConfig `toml:"logging"`
}

// SessionConfig controls where modules are found and how loading is
// parallelized (spec.md §4.4's load orchestrator).
type SessionConfig struct {
	// RootDir is the directory module names are resolved under.
	RootDir string `toml:"root_dir"`

	// SourceExtension is the file extension module source files carry.
	SourceExtension string `toml:"source_extension"`

	// MaxWorkers bounds how many modules may be parsed/canonicalized/
	// solved concurrently. 0 means "use runtime.NumCPU()".
	MaxWorkers int `toml:"max_workers"`
}

// LoggingConfig controls the session's structured logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	JSON  bool     `toml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			RootDir:         ".",
			SourceExtension: ".loom",
			MaxWorkers:      0,
		},
		Logging: LoggingConfig{
			Level: LogInfo,
			JSON:  false,
		},
	}
}

// Load loads configuration from multiple sources with precedence:
//  1. CLI flags (highest priority) - passed as overrides
//  2. Project loom.toml (current directory)
//  3. User config (~/.loom/config.toml)
//  4. Built-in defaults (lowest priority)
func Load(overrides *Config) (*Config, error) {
	cfg := DefaultConfig()

	userConfigPath := filepath.Join(os.Getenv("HOME"), ".loom", "config.toml")
	if err := loadConfigFile(userConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	projectConfigPath := "loom.toml"
	if err := loadConfigFile(projectConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if overrides != nil {
		if overrides.Session.RootDir != "" {
			cfg.Session.RootDir = overrides.Session.RootDir
		}
		if overrides.Session.SourceExtension != "" {
			cfg.Session.SourceExtension = overrides.Session.SourceExtension
		}
		if overrides.Session.MaxWorkers != 0 {
			cfg.Session.MaxWorkers = overrides.Session.MaxWorkers
		}
		if overrides.Logging.Level != "" {
			cfg.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.JSON {
			cfg.Logging.JSON = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads a TOML configuration file into the provided config.
// If the file doesn't exist, this is not an error (we use defaults).
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Session.RootDir == "" {
		return fmt.Errorf("session.root_dir must not be empty")
	}
	if c.Session.SourceExtension == "" {
		return fmt.Errorf("session.source_extension must not be empty")
	}
	if c.Session.MaxWorkers < 0 {
		return fmt.Errorf("session.max_workers must be >= 0, got %d", c.Session.MaxWorkers)
	}
	if !c.Logging.Level.IsValid() {
		return fmt.Errorf("invalid logging.level: %q (must be 'debug', 'info', 'warn', or 'error')", c.Logging.Level)
	}
	return nil
}

// Workers returns the configured worker count, resolving the "auto" (0)
// sentinel against the host's CPU count.
func (c *Config) Workers() int {
	if c.Session.MaxWorkers > 0 {
		return c.Session.MaxWorkers
	}
	return runtime.NumCPU()
}
