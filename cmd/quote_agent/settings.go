package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/config"
	"github.com/jonathan/renovation-quoter/internal/logging"
	"github.com/jonathan/renovation-quoter/internal/pipeline"
)

// loadSettings merges the config file, environment and defaults, then applies
// the persistent flags and builds the logger
func loadSettings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		fileCfg = loaded
	}
	fileCfg.ApplyEnv()
	cfg := fileCfg.MergeWithDefaults(config.Defaults())

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}

// openServices loads settings and assembles the pipeline services
func openServices(ctx context.Context, cmd *cobra.Command) (*pipeline.Services, config.Config, *slog.Logger, error) {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	svc, err := pipeline.Assemble(ctx, cfg, logger)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("failed to assemble services: %w", err)
	}
	return svc, cfg, logger, nil
}
