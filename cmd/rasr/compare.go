package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rasr/internal/compare"
)

var compareFormat string

var compareCmd = &cobra.Command{
	Use:   "compare <project>...",
	Short: "Cross-reference patterns across several projects",
	Long: `Analyze two or more projects and render a comparison matrix of
their architecture styles, design patterns, and communication patterns.

Examples:
  rasr compare projA projB
  rasr compare projA projB projC --format=json`,
	Args: cobra.MinimumNArgs(2),
	Run:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareFormat, "format", "markdown", "Output format (json, markdown)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) {
	logger := newLogger()

	reports := make([]compare.ProjectReport, 0, len(args))
	for _, arg := range args {
		projectRoot, err := filepath.Abs(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", arg, err)
			os.Exit(1)
		}

		result := mustAnalyze(projectRoot, logger)
		reports = append(reports, compare.ProjectReport{
			Name:          result.Project,
			Styles:        result.Styles,
			Patterns:      result.Patterns,
			Communication: result.Communication,
			CrateCount:    result.Manifest.PackageCount,
		})
	}

	comparison := compare.Compare(reports)

	output, err := renderOutput(compareFormat, comparison, comparison.Markdown)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
