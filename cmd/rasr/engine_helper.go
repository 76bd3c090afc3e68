package main

import (
	"fmt"
	"os"
	"path/filepath"

	"rasr/internal/config"
	"rasr/internal/engine"
	"rasr/internal/logging"
)

// newLogger creates a logger honoring the --log-level flag
func newLogger() *logging.Logger {
	return newLoggerWithFormat(logging.HumanFormat)
}

func newLoggerWithFormat(format logging.Format) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(logLevelFlag),
	})
}

// resolveProjectRoot turns the optional positional argument into an absolute
// project root, defaulting to the current directory.
func resolveProjectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	return abs, nil
}

// loadConfig loads the project configuration, falling back to defaults when
// the file is unreadable.
func loadConfig(projectRoot string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("Invalid config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// mustAnalyze runs a full analysis or exits
func mustAnalyze(projectRoot string, logger *logging.Logger) *engine.Result {
	cfg := loadConfig(projectRoot, logger)

	eng, err := engine.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}

	result, err := eng.Analyze(projectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing project: %v\n", err)
		os.Exit(1)
	}
	return result
}

// rasrDir is where per-project state (config, snapshots) lives
func rasrDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".rasr")
}
