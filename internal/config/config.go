package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request timeout for the documentation
	// service. Payloads are small JSON documents, so 30 seconds covers
	// even slow links without letting a dead connection stall the crawl
	// for long.
	DefaultTimeout = 30 * time.Second

	// DefaultLimit of 0 means no visit budget: the crawl runs until the
	// frontier is empty. Scope containment bounds the crawl to one module
	// namespace, so unlimited is a safe default.
	DefaultLimit = 0

	// AppName is the application name used for XDG directory paths.
	AppName = "docfetch"
)

// Config holds all configuration options for a docfetch crawl.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Module is the documentation namespace to crawl (e.g. "Widgets").
	// All fetched paths share the "documentation/<Module>" prefix.
	Module string

	// OutputDir is the destination directory for fetched documents.
	// When empty, a directory named after the module in the current
	// working directory is used.
	OutputDir string

	// Limit is the visit budget: the maximum number of topic paths
	// dequeued in one run. 0 means unlimited.
	Limit int

	// BaseURL overrides the documentation service endpoint.
	// Empty means the built-in endpoint.
	BaseURL string

	// Timeout is the per-request timeout for each fetch.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header sent with requests.
	// Empty means the built-in identifier.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// 0 means the built-in default.
	MaxBodySize int64

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .docfetch in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// ModuleConfigs holds per-module overrides loaded from the config file.
	ModuleConfigs *File

	// JSONReport enables JSON report output instead of the plain summary.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the plain
	// summary. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// SaveToDB indicates whether to record the run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
// Users override specific values after creation, typically from CLI flags.
func NewConfig() *Config {
	return &Config{
		Limit:    DefaultLimit,
		Timeout:  DefaultTimeout,
		SaveToDB: true,
		DBDir:    XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for docfetch.
// On Linux: ~/.local/share/docfetch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for docfetch.
// On Linux: ~/.config/docfetch
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing the first problem found.
// This is called once after CLI parsing, before any crawling begins;
// validation failures are the only fatal errors the fetch command has.
func (c *Config) Validate() error {
	if c.Module == "" {
		return ErrNoModule
	}

	if c.Limit < 0 {
		return ErrInvalidLimit
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// Destination returns the effective output directory:
// OutputDir when set, otherwise the module name in the working directory.
func (c *Config) Destination() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.Module
}
