package main

import (
	"rasr/internal/version"

	"github.com/spf13/cobra"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "rasr",
	Short: "rasr - Rust Architecture & Semantics Recovery",
	Long: `rasr recovers architectural knowledge from Rust codebases: it extracts
entities and relationships into a knowledge graph, scores architecture styles
and design patterns through weighted evidence matching, and builds a semantic
index with hot spots and entry points.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("rasr version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, or error")
}
