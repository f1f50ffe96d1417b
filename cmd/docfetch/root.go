// Package main provides the entry point for the docfetch CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	doclog "github.com/nao1215/docfetch/internal/log"
)

// NewRootCmd creates the root command for docfetch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docfetch",
		Short: "Mirror documentation graphs into local JSON files",
		Long: `docfetch crawls a module's documentation graph on the remote
documentation service and stores every reachable topic as a JSON file.

The crawl is breadth-first, stays inside the requested module namespace,
and fetches each topic at most once. Individual fetch failures are
reported and tallied; they never abort a run.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// All output goes through the masking handler so credential-shaped values
// never reach the terminal.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(doclog.NewMaskHandler(handler))
}
