package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rasr/internal/export"
)

var patternsFormat string

var patternsCmd = &cobra.Command{
	Use:   "patterns [project]",
	Short: "Detect design patterns in a project",
	Long: `Score the built-in design pattern signatures (plus any configured
catalog files) against the project's sources and manifest.

Examples:
  rasr patterns
  rasr patterns path/to/project --format=markdown`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPatterns,
}

func init() {
	patternsCmd.Flags().StringVar(&patternsFormat, "format", "json", "Output format (json, markdown)")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := mustAnalyze(projectRoot, logger)

	output, err := renderOutput(patternsFormat, result.Patterns, func() string {
		return export.PatternsMarkdown(result.Project, result.Patterns)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
