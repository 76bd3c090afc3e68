package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rasr/internal/export"
	"rasr/internal/patterns"
)

var archFormat string

var archCmd = &cobra.Command{
	Use:   "arch [project]",
	Short: "Detect architecture styles and communication patterns",
	Long: `Report the project's architecture styles (workspace-shape heuristics
plus scored style signatures) and its communication patterns.

Examples:
  rasr arch
  rasr arch path/to/project --format=markdown`,
	Args: cobra.MaximumNArgs(1),
	Run:  runArch,
}

func init() {
	archCmd.Flags().StringVar(&archFormat, "format", "json", "Output format (json, markdown)")
	rootCmd.AddCommand(archCmd)
}

// ArchResponse is the JSON shape of the arch command output
type ArchResponse struct {
	Project       string                 `json:"project"`
	Styles        []patterns.Detection   `json:"styles"`
	Communication []patterns.CommPattern `json:"communication"`
	IsWorkspace   bool                   `json:"isWorkspace"`
	PackageCount  int                    `json:"packageCount"`
}

func runArch(cmd *cobra.Command, args []string) {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := mustAnalyze(projectRoot, logger)

	resp := &ArchResponse{
		Project:       result.Project,
		Styles:        result.Styles,
		Communication: result.Communication,
		IsWorkspace:   result.Manifest.IsWorkspace,
		PackageCount:  result.Manifest.PackageCount,
	}

	output, err := renderOutput(archFormat, resp, func() string {
		return export.ArchitectureMarkdown(result)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
