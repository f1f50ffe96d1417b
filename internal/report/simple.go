package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/docfetch/internal/model"
)

// SimpleWriter outputs human-readable text reports.
//
// Design decision: We use plain text without ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-node outcome listing.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-node outcome listing in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.CrawlReport) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Module:      %s\n", report.Module)
	fmt.Fprintf(&sb, "Destination: %s\n", report.Destination)
	fmt.Fprintf(&sb, "Started:     %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Duration:    %s\n", report.Duration().Round(time.Millisecond))
	if report.Limit > 0 {
		fmt.Fprintf(&sb, "Limit:       %d", report.Limit)
		if report.LimitReached {
			sb.WriteString(" (reached)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Fetched: %d  Failed: %d  Stored: %d\n", report.Fetched, report.Failed, report.Stored)

	if w.verbose && len(report.Nodes) > 0 {
		sb.WriteString("\nNodes:\n")
		for _, node := range report.Nodes {
			fmt.Fprintf(&sb, "  %-16s %s", node.Status, node.Path)
			if node.Error != "" {
				fmt.Fprintf(&sb, "  (%s)", node.Error)
			}
			sb.WriteString("\n")
		}
	}

	return io.WriteString(w.output, sb.String())
}
