package report

import (
	"io"

	"github.com/nao1215/docfetch/internal/model"
)

// Writer defines the interface for crawl report output.
// Implementations render a report in a specific format.
//
// Design decision: We use an interface so the fetch command can pick a
// writer from flags and hand it any destination (stdout, a report file)
// with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.CrawlReport) (int, error)
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
