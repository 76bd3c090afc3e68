package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rasr/internal/export"
)

var indexFormat string

var indexCmd = &cobra.Command{
	Use:   "index [project]",
	Short: "Build the semantic index for a project",
	Long: `Compute the semantic index: file-to-concept maps, degree-ranked hot
spots, entry points, and the public API surface.

Examples:
  rasr index
  rasr index path/to/project --format=markdown`,
	Args: cobra.MaximumNArgs(1),
	Run:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexFormat, "format", "json", "Output format (json, markdown)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := mustAnalyze(projectRoot, logger)
	cfg := loadConfig(projectRoot, logger)

	output, err := renderOutput(indexFormat, result.Index, func() string {
		return export.IndexMarkdown(result.Index, cfg.Index.PublicAPIDisplayLimit)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
