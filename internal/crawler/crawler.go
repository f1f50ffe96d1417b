package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/docfetch/internal/docc"
	"github.com/nao1215/docfetch/internal/model"
	"github.com/nao1215/docfetch/internal/store"
)

// ErrEmptyModule is returned when Crawl is called without a module name.
var ErrEmptyModule = errors.New("module name must not be empty")

// Fetcher retrieves the JSON document for a topic path.
// Implementations return docc.ErrNotFound for a missing topic and any
// other error for transport-level failures.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Store persists a JSON document under a derived file name.
type Store interface {
	Store(name string, data []byte) error
}

// Crawler walks a module's documentation graph and persists every
// reachable document exactly once.
type Crawler struct {
	// fetcher retrieves documents from the remote service.
	fetcher Fetcher

	// store persists fetched documents.
	store Store

	// logger receives structured debug output.
	logger *slog.Logger

	// trace receives the human-readable line per processed node.
	trace io.Writer

	// limit is the visit budget: the maximum number of paths dequeued.
	// 0 means unlimited.
	limit int

	// destination is recorded in the report for observability only;
	// the store owns the actual output location.
	destination string
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithLimit sets the visit budget.
// The budget caps dequeued paths, not successful fetches: a node that
// fails to fetch still consumes budget. 0 means unlimited.
func WithLimit(limit int) CrawlerOption {
	return func(c *Crawler) {
		c.limit = limit
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithTrace sets the writer for per-node trace lines.
// By default trace output is discarded; the CLI passes stdout.
func WithTrace(w io.Writer) CrawlerOption {
	return func(c *Crawler) {
		c.trace = w
	}
}

// WithDestination records the output directory in the crawl report.
func WithDestination(dir string) CrawlerOption {
	return func(c *Crawler) {
		c.destination = dir
	}
}

// NewCrawler creates a Crawler with the given collaborators.
func NewCrawler(fetcher Fetcher, st Store, opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		fetcher: fetcher,
		store:   st,
		logger:  slog.Default(),
		trace:   io.Discard,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Crawl fetches every document reachable from "documentation/<module>"
// that stays inside the module namespace, persisting each exactly once.
//
// Per-node failures are recorded in the report and never abort the run.
// The returned error is non-nil only for an empty module name or a
// cancelled context; in the cancellation case the partial report is
// returned alongside the error.
func (c *Crawler) Crawl(ctx context.Context, module string) (*model.CrawlReport, error) {
	if module == "" {
		return nil, ErrEmptyModule
	}

	report := model.NewCrawlReport(module, c.destination, c.limit)
	frontier := []string{"documentation/" + module}
	visited := make(map[string]bool)

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			report.Finish()
			return report, ctx.Err()
		default:
		}

		current := frontier[0]
		frontier = frontier[1:]

		// The visited check at dequeue time is the sole deduplication
		// guarantee; the frontier may hold a path twice.
		if visited[current] {
			continue
		}
		visited[current] = true

		if c.limit > 0 && len(visited) > c.limit {
			report.LimitReached = true
			fmt.Fprintf(c.trace, "Reached limit (%d) for %s; stopping.\n", c.limit, module)
			c.logger.Debug("visit budget exhausted",
				"module", module,
				"limit", c.limit,
				"abandoned", len(frontier)+1,
			)
			break
		}

		data, err := c.fetcher.Fetch(ctx, current)
		if err != nil {
			c.recordFetchFailure(report, current, err)
			continue
		}

		outcome := model.NodeOutcome{Path: current, Status: model.StatusFetched}
		name := store.FileName(current)
		if err := c.store.Store(name, data); err != nil {
			outcome.Status = model.StatusStoreFailed
			outcome.Error = err.Error()
			fmt.Fprintf(c.trace, "Store failed %s: %v\n", current, err)
			c.logger.Warn("failed to store document", "path", current, "file", name, "error", err)
		} else {
			fmt.Fprintf(c.trace, "Saved %s\n", current)
		}
		report.Record(outcome)

		for _, ref := range extractReferences(data, module) {
			if !visited[ref] {
				frontier = append(frontier, ref)
			}
		}
	}

	report.Finish()
	return report, nil
}

// recordFetchFailure classifies a fetch error and records the outcome.
func (c *Crawler) recordFetchFailure(report *model.CrawlReport, path string, err error) {
	status := model.StatusTransportError
	if errors.Is(err, docc.ErrNotFound) {
		status = model.StatusNotFound
		fmt.Fprintf(c.trace, "Not found %s\n", path)
	} else {
		fmt.Fprintf(c.trace, "Error %s: %v\n", path, err)
	}

	report.Record(model.NodeOutcome{Path: path, Status: status, Error: err.Error()})
	c.logger.Debug("fetch failed", "path", path, "status", string(status), "error", err)
}
