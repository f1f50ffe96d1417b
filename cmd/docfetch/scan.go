package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/docfetch/internal/secrets"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a file tree for accidentally committed secrets",
		Long: `Scan walks a file tree and matches text files against known secret
signatures: cloud provider keys, generic API key literals, and private key
markers. Binary files and common build/VCS directories are skipped.

The command exits 0 when nothing is found and 1 when at least one
potential secret is detected.

Examples:
  # Scan the current directory
  docfetch scan

  # Scan a repository, skipping test fixtures
  docfetch scan --ignore '**/testdata/**' path/to/repo`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().StringArray("ignore", nil,
		"Glob patterns to skip, relative to the scan root (repeatable)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ignoreGlobs, err := cmd.Flags().GetStringArray("ignore")
	if err != nil {
		return err
	}

	scanner := secrets.NewScanner(secrets.WithIgnoreGlobs(ignoreGlobs))
	findings, err := scanner.Scan(root)
	if err != nil {
		return err
	}

	for _, f := range findings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: [%s] %s\n", f.Path, f.Line, f.Rule, f.Preview)
	}

	if len(findings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no sensitive tokens discovered")
		return nil
	}

	return fmt.Errorf("found %d potential secret(s)", len(findings))
}
