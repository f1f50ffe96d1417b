// Package report renders crawl reports in multiple output formats.
//
// Three writers are provided: SimpleWriter for terminal display,
// JSONWriter for tool integration, and MarkdownWriter for documentation
// and sharing. All writers implement the Writer interface and write to an
// io.Writer supplied at construction, so the same code path serves stdout
// and report files.
package report
