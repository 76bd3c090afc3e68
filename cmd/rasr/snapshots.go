package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rasr/internal/store"
)

var (
	snapshotsProject string
	snapshotsLimit   int
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage stored analysis snapshots",
	Long: `List, show, and delete analysis snapshots stored under
.rasr/snapshots.db in the current project.

Examples:
  rasr snapshots list
  rasr snapshots show <id>
  rasr snapshots delete <id>`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	Args:  cobra.NoArgs,
	Run:   runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotsShow,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one snapshot",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotsDelete,
}

func init() {
	snapshotsCmd.PersistentFlags().StringVar(&snapshotsProject, "project", "", "Filter by project name")
	snapshotsListCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "Maximum snapshots to list")
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd, snapshotsDeleteCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func mustOpenStore() *store.Store {
	logger := newLogger()

	projectRoot, err := resolveProjectRoot(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s, err := store.OpenStore(rasrDir(projectRoot), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	return s
}

func runSnapshotsList(cmd *cobra.Command, args []string) {
	s := mustOpenStore()
	defer func() { _ = s.Close() }()

	metas, err := s.ListSnapshots(snapshotsProject, snapshotsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
		os.Exit(1)
	}

	output, err := formatJSON(metas)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runSnapshotsShow(cmd *cobra.Command, args []string) {
	s := mustOpenStore()
	defer func() { _ = s.Close() }()

	result, err := s.GetSnapshot(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}

	output, err := formatJSON(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runSnapshotsDelete(cmd *cobra.Command, args []string) {
	s := mustOpenStore()
	defer func() { _ = s.Close() }()

	if err := s.DeleteSnapshot(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted snapshot %s\n", args[0])
}
