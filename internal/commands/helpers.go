package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
)

// Options are the settings shared by every command. Empty fields fall
// back to the config file.
type Options struct {
	ConfigFile string
	BasePath   string
	Verbose    bool
}

// loadConfig loads the configuration and applies command-line overrides
func loadConfig(opts Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigFile != "" {
		cfg, err = config.LoadFrom(opts.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.BasePath != "" {
		cfg.BasePath = opts.BasePath
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// setupLogger logs to stderr and, if configured, to the log file.
// The returned cleanup func must be called when done.
func setupLogger(cfg *config.Config, verbose bool) (*logger.Logger, func()) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, os.Stderr)
		if err == nil {
			return l, cleanup
		}
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
	}

	return logger.NewWithLevel(os.Stderr, level), func() {}
}
