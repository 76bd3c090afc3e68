package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rasr/internal/export"
	"rasr/internal/store"
)

var (
	analyzeOut  string
	analyzeSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [project]",
	Short: "Run a full analysis over a Rust project",
	Long: `Run every analysis stage over a project: scan the sources, build the
knowledge graph, detect architecture styles and design patterns, and compute
the semantic index.

Prints the complete result as JSON. With --out, also writes the JSON plus
markdown reports into a directory. With --save, stores the result as a
snapshot under .rasr/snapshots.db.

Examples:
  rasr analyze
  rasr analyze path/to/project
  rasr analyze --out=reports/
  rasr analyze --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Directory for JSON and markdown reports")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the result as a snapshot")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := mustAnalyze(projectRoot, logger)
	cfg := loadConfig(projectRoot, logger)

	if analyzeOut != "" {
		reports := []struct {
			name  string
			write func() error
		}{
			{"analysis.json", func() error {
				return export.WriteJSON(filepath.Join(analyzeOut, "analysis.json"), result)
			}},
			{"graph-summary.md", func() error {
				return export.WriteMarkdown(filepath.Join(analyzeOut, "graph-summary.md"),
					export.GraphSummaryMarkdown(result.Graph))
			}},
			{"patterns.md", func() error {
				return export.WriteMarkdown(filepath.Join(analyzeOut, "patterns.md"),
					export.PatternsMarkdown(result.Project, result.Patterns))
			}},
			{"architecture.md", func() error {
				return export.WriteMarkdown(filepath.Join(analyzeOut, "architecture.md"),
					export.ArchitectureMarkdown(result))
			}},
			{"semantic-index.md", func() error {
				return export.WriteMarkdown(filepath.Join(analyzeOut, "semantic-index.md"),
					export.IndexMarkdown(result.Index, cfg.Index.PublicAPIDisplayLimit))
			}},
		}
		for _, r := range reports {
			if err := r.write(); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", r.name, err)
				os.Exit(1)
			}
		}
		logger.Info("Reports written", map[string]interface{}{
			"dir": analyzeOut,
		})
	}

	if analyzeSave {
		s, err := store.OpenStore(rasrDir(projectRoot), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = s.Close() }()

		id, err := s.SaveSnapshot(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Snapshot saved", map[string]interface{}{
			"snapshotId": id,
		})
	}

	output, err := formatJSON(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
