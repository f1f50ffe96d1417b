package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docfetch/internal/config"
	"github.com/nao1215/docfetch/internal/crawler"
	"github.com/nao1215/docfetch/internal/database"
	"github.com/nao1215/docfetch/internal/docc"
	"github.com/nao1215/docfetch/internal/model"
	"github.com/nao1215/docfetch/internal/report"
	"github.com/nao1215/docfetch/internal/store"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <module>",
		Short: "Crawl a module's documentation graph into local JSON files",
		Long: `Fetch crawls the documentation graph of a module and stores every
reachable topic as a JSON file.

Starting from documentation/<module>, fetch follows the references embedded
in each document, confined to the module namespace, visiting each topic at
most once. One file is written per topic: path separators become
underscores and ".json" is appended.

Individual fetch or store failures are reported and counted; they never
abort the crawl, and the command still exits 0. Only invalid arguments
cause a non-zero exit.

Examples:
  # Mirror the Widgets module into ./Widgets
  docfetch fetch Widgets

  # Stop after visiting 50 topics
  docfetch fetch --limit 50 Widgets

  # Write into a custom directory and print a JSON report
  docfetch fetch -o /tmp/widgets --json Widgets

Configuration file (.docfetch) example:
  defaults:
    limit: 200
  modules:
    Widgets:
      limit: 50
      output: data/widgets`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("limit", "l", config.DefaultLimit,
		"Maximum number of topics to visit (0 = unlimited)")
	cmd.Flags().StringP("output", "o", "",
		"Destination directory (default: ./<module>)")
	cmd.Flags().String("base-url", "",
		"Documentation service endpoint (default: "+docc.DefaultBaseURL+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().String("user-agent", "",
		"Custom User-Agent header for requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docfetch in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the crawl history database")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildFetchConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runFetch(ctx, cfg, logger)
}

// buildFetchConfig creates a Config from cobra command flags and the
// optional configuration file. Explicitly set flags win over file values,
// which win over defaults.
func buildFetchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Module = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load module-specific configurations from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.ModuleConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.ModuleConfigs = &config.File{Modules: make(map[string]config.ModuleConfig)}
	}

	// File values apply first so explicitly set flags can override them.
	applyModuleConfig(cfg, mergeModuleConfig(cfg.ModuleConfigs, cfg.Module))

	if cmd.Flags().Changed("limit") || cfg.Limit == 0 {
		cfg.Limit, err = cmd.Flags().GetInt("limit")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputDir, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL, err = cmd.Flags().GetString("base-url")
		if err != nil {
			return nil, err
		}
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	return cfg, nil
}

// mergeModuleConfig merges the file defaults with the module's overrides.
func mergeModuleConfig(file *config.File, module string) config.ModuleConfig {
	if file == nil {
		return config.ModuleConfig{}
	}

	result := file.Defaults
	override, ok := file.Modules[module]
	if !ok {
		return result
	}

	if override.Limit > 0 {
		result.Limit = override.Limit
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	return result
}

// applyModuleConfig copies file-level settings into the Config.
func applyModuleConfig(cfg *config.Config, mc config.ModuleConfig) {
	if mc.Limit > 0 {
		cfg.Limit = mc.Limit
	}
	if mc.BaseURL != "" {
		cfg.BaseURL = mc.BaseURL
	}
	if mc.Output != "" {
		cfg.OutputDir = mc.Output
	}
}

// runFetch executes the crawl.
func runFetch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	destination := cfg.Destination()

	logger.Info("starting crawl",
		"module", cfg.Module,
		"destination", destination,
		"limit", cfg.Limit,
		"saveToDB", cfg.SaveToDB,
	)

	clientOpts := []docc.Option{docc.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, docc.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, docc.WithUserAgent(cfg.UserAgent))
	}
	if cfg.MaxBodySize > 0 {
		clientOpts = append(clientOpts, docc.WithMaxBodySize(cfg.MaxBodySize))
	}
	client := docc.NewClient(clientOpts...)

	c := crawler.NewCrawler(
		client,
		store.NewFileStore(destination),
		crawler.WithLimit(cfg.Limit),
		crawler.WithLogger(logger),
		crawler.WithTrace(os.Stdout),
		crawler.WithDestination(destination),
	)

	startTime := time.Now()
	crawlReport, err := c.Crawl(ctx, cfg.Module)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	interrupted := errors.Is(err, context.Canceled)

	elapsed := time.Since(startTime)
	fmt.Printf("\nCrawl completed in %s: %d fetched, %d failed, %d stored\n\n",
		elapsed.Round(time.Millisecond), crawlReport.Fetched, crawlReport.Failed, crawlReport.Stored)

	if err := outputReport(cfg, crawlReport); err != nil {
		logger.Error("report failed", "module", cfg.Module, "error", err)
	}

	if cfg.SaveToDB {
		if err := saveCrawlReport(ctx, cfg, crawlReport, logger); err != nil {
			logger.Error("failed to save crawl report", "module", cfg.Module, "error", err)
		}
	}

	if interrupted {
		return context.Canceled
	}
	return nil
}

// outputReport outputs the crawl report in the requested format.
func outputReport(cfg *config.Config, crawlReport *model.CrawlReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(crawlReport)
	return err
}

// saveCrawlReport records the run in the history database.
// The save uses a background context so an interrupted crawl still gets
// its partial report persisted.
func saveCrawlReport(ctx context.Context, cfg *config.Config, crawlReport *model.CrawlReport, logger *slog.Logger) error {
	if ctx.Err() != nil {
		ctx = context.Background()
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if err := db.SaveRun(ctx, crawlReport); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("crawl report saved", "runID", crawlReport.RunID, "dir", cfg.DBDir)
	return nil
}
