package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nao1215/docfetch/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Documentation Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Module", "`" + report.Module + "`"},
			{"Destination", "`" + report.Destination + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration().Round(time.Millisecond).String()},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Fetched", strconv.Itoa(report.Fetched)},
			{"Failed", strconv.Itoa(report.Failed)},
			{"Stored", strconv.Itoa(report.Stored)},
		},
	})
	md.PlainText("")

	if len(report.Nodes) > 0 {
		w.writeNodes(md, report)
	}

	return len(md.String()), md.Build()
}

// statusText summarizes how the run ended.
func statusText(report *model.CrawlReport) string {
	if report.LimitReached {
		return "stopped at visit limit (" + strconv.Itoa(report.Limit) + ")"
	}
	return "complete"
}

// writeNodes writes the per-node outcome table.
func (w *MarkdownWriter) writeNodes(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Nodes")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Nodes))
	for _, node := range report.Nodes {
		rows = append(rows, []string{
			"`" + node.Path + "`",
			string(node.Status),
			node.Error,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Path", "Status", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}
