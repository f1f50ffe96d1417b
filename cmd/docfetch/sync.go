package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/docfetch/internal/manifest"
)

// missingPreviewLen caps how many missing file names are printed per directory.
const missingPreviewLen = 10

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <directory>",
		Short: "Mirror manifest-referenced files from raw/ into essentials/",
		Long: `Sync reads a directory's manifest (README.md by default), finds every
"essentials/<name>.json" reference, and copies the referenced files from
the raw/ subdirectory into the essentials/ subdirectory.

When a referenced name has no exact match in raw/, the shortest file whose
name starts with the referenced name is copied instead. Names with no
candidate are reported as missing; missing files do not fail the command.

Examples:
  # Sync one documentation directory
  docfetch sync Docs/Widgets

  # Sync every child directory under Docs
  docfetch sync --all Docs`,
		Args: cobra.ExactArgs(1),
		RunE: runSyncCmd,
	}

	cmd.Flags().String("manifest", manifest.DefaultManifestName,
		"Manifest file name inside each directory")
	cmd.Flags().String("raw", manifest.DefaultRawDirName,
		"Source subdirectory name")
	cmd.Flags().String("dest", manifest.DefaultDestDirName,
		"Destination subdirectory name")
	cmd.Flags().BoolP("all", "a", false,
		"Treat the argument as a root and sync every child directory")

	return cmd
}

// runSyncCmd executes the sync command.
func runSyncCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	manifestName, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return err
	}
	rawName, err := cmd.Flags().GetString("raw")
	if err != nil {
		return err
	}
	destName, err := cmd.Flags().GetString("dest")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	syncer := manifest.NewSyncer(
		manifest.WithManifestName(manifestName),
		manifest.WithRawDirName(rawName),
		manifest.WithDestDirName(destName),
	)

	if !all {
		result, err := syncer.Sync(args[0])
		if err != nil {
			return err
		}
		printSyncResult(cmd, args[0], result)
		return nil
	}

	results, err := syncer.SyncAll(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printSyncResult(cmd, name, results[name])
	}
	return nil
}

// printSyncResult prints one directory's copied/missing summary.
func printSyncResult(cmd *cobra.Command, name string, result *manifest.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: copied %d files\n", name, len(result.Copied))
	if len(result.Missing) == 0 {
		return
	}

	preview := strings.Join(result.Missing[:min(len(result.Missing), missingPreviewLen)], ", ")
	if len(result.Missing) > missingPreviewLen {
		preview += ", ..."
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Missing %d file(s): %s\n", len(result.Missing), preview)
}
