// Package cli contains the vibkit CLI commands and subcommands.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/glorpus-work/vibkit/internal/logger"
	"github.com/glorpus-work/vibkit/pkg/config"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// loadConfig loads the configuration file and applies the global flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging configures the process logger and terminal colours from the settings.
func setupLogging(cfg *config.Config) error {
	disable := NoColor != nil && *NoColor
	if disable {
		color.NoColor = true
	}
	logger.SetNoColor(disable)
	if err := logger.SetLogFile(cfg.Settings.LogFile); err != nil {
		return err
	}
	format := logger.FormatText
	if cfg.Settings.OutputFormat == FormatJSON {
		format = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, format)
	return nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes the load or save fail with a descriptive error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
