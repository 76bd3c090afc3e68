package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rasr/internal/export"
)

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph [project]",
	Short: "Build the knowledge graph for a project",
	Long: `Extract entities and relationships into the knowledge graph and
print it, either as full JSON or as a markdown summary.

Examples:
  rasr graph
  rasr graph path/to/project --format=markdown`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "json", "Output format (json, markdown)")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := mustAnalyze(projectRoot, logger)

	output, err := renderOutput(graphFormat, result.Graph, func() string {
		return export.GraphSummaryMarkdown(result.Graph)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
