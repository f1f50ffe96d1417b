package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docfetch/internal/config"
	"github.com/nao1215/docfetch/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past crawl runs",
		Long: `History lists crawl runs recorded in the local database, newest first.

Each fetch run is recorded with its tallies and one row per visited topic.
The history is an audit log only; it has no effect on future crawls.

Examples:
  # Show the last 20 runs
  docfetch history

  # Show runs for one module
  docfetch history --module Widgets

  # Show the per-topic outcomes of one run
  docfetch history --nodes 8b9c0d1e-...`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("module", "m", "", "Only list runs for this module")
	cmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().String("nodes", "", "Show the per-topic outcomes of the given run ID")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data dir)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	module, err := cmd.Flags().GetString("module")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetString("nodes")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if runID != "" {
		return printRunNodes(cmd, db, runID)
	}

	runs, err := db.ListRuns(cmd.Context(), module, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no crawl runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-20s fetched=%d failed=%d stored=%d\n",
			run.RunID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Module,
			run.Fetched,
			run.Failed,
			run.Stored,
		)
	}
	return nil
}

// printRunNodes prints the per-topic outcomes of one run.
func printRunNodes(cmd *cobra.Command, db *database.HistoryDB, runID string) error {
	nodes, err := db.RunNodes(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no nodes recorded for run %s\n", runID)
		return nil
	}

	for _, node := range nodes {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s", node.Status, node.Path)
		if node.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", node.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
