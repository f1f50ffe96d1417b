package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nao1215/docfetch/internal/docc"
	"github.com/nao1215/docfetch/internal/model"
)

// fakeFetcher serves canned documents and errors, recording every call.
type fakeFetcher struct {
	docs  map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	doc, ok := f.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docc.ErrNotFound, path)
	}
	return []byte(doc), nil
}

// fakeStore collects stored documents in memory.
type fakeStore struct {
	files map[string][]byte
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (s *fakeStore) Store(name string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.files[name] = data
	return nil
}

// doc builds a JSON document with references to the given URLs.
func doc(urls ...string) string {
	var sb strings.Builder
	sb.WriteString(`{"identifier": "test", "references": {`)
	for i, u := range urls {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"r%d": {"url": %q}`, i, u)
	}
	sb.WriteString("}}")
	return sb.String()
}

func TestCrawlerCrawl(t *testing.T) {
	t.Parallel()

	t.Run("single node with no references", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": `{"identifier": "widgets"}`,
		}}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(fetcher.calls) != 1 {
			t.Errorf("expected 1 fetch, got %d: %v", len(fetcher.calls), fetcher.calls)
		}
		if report.Fetched != 1 || report.Failed != 0 || report.Stored != 1 {
			t.Errorf("unexpected tallies: fetched=%d failed=%d stored=%d",
				report.Fetched, report.Failed, report.Stored)
		}
		if _, ok := st.files["documentation_Widgets.json"]; !ok {
			t.Errorf("expected stored file documentation_Widgets.json, got %v", keys(st.files))
		}
	})

	t.Run("cycle terminates with each node fetched once", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets":   doc("/documentation/Widgets/A"),
			"documentation/Widgets/A": doc("/documentation/Widgets/B"),
			"documentation/Widgets/B": doc("/documentation/Widgets/A", "/documentation/Widgets"),
		}}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(fetcher.calls) != 3 {
			t.Errorf("expected 3 fetches, got %d: %v", len(fetcher.calls), fetcher.calls)
		}
		if report.Fetched != 3 {
			t.Errorf("expected 3 fetched, got %d", report.Fetched)
		}
	})

	t.Run("out-of-scope references are never fetched", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": doc(
				"/documentation/Widgets/Gadget",
				"/documentation/Other/Thing",
			),
			"documentation/Widgets/Gadget": `{"identifier": "gadget"}`,
		}}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(fetcher.calls) != 2 {
			t.Fatalf("expected 2 fetches, got %d: %v", len(fetcher.calls), fetcher.calls)
		}
		for _, call := range fetcher.calls {
			if strings.Contains(call, "Other") {
				t.Errorf("out-of-scope path was fetched: %s", call)
			}
		}
		if report.Stored != 2 {
			t.Errorf("expected 2 stored, got %d", report.Stored)
		}
		for _, want := range []string{"documentation_Widgets.json", "documentation_Widgets_Gadget.json"} {
			if _, ok := st.files[want]; !ok {
				t.Errorf("expected stored file %s, got %v", want, keys(st.files))
			}
		}
	})

	t.Run("limit stops the crawl before referenced nodes are fetched", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": doc(
				"/documentation/Widgets/A",
				"/documentation/Widgets/B",
			),
			"documentation/Widgets/A": `{}`,
			"documentation/Widgets/B": `{}`,
		}}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st, WithLimit(1)).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(fetcher.calls) != 1 || fetcher.calls[0] != "documentation/Widgets" {
			t.Errorf("expected only the seed to be fetched, got %v", fetcher.calls)
		}
		if !report.LimitReached {
			t.Error("expected LimitReached to be true")
		}
		if report.Fetched != 1 {
			t.Errorf("expected 1 fetched, got %d", report.Fetched)
		}
	})

	t.Run("limit larger than the graph has no effect", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets":   doc("/documentation/Widgets/A"),
			"documentation/Widgets/A": `{}`,
		}}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st, WithLimit(100)).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if report.Fetched != 2 {
			t.Errorf("expected 2 fetched, got %d", report.Fetched)
		}
		if report.LimitReached {
			t.Error("expected LimitReached to be false")
		}
	})

	t.Run("not-found seed yields one failure and no files", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl must not fail on a not-found node: %v", err)
		}

		if report.Failed != 1 || report.Fetched != 0 || report.Stored != 0 {
			t.Errorf("unexpected tallies: fetched=%d failed=%d stored=%d",
				report.Fetched, report.Failed, report.Stored)
		}
		if len(st.files) != 0 {
			t.Errorf("expected no stored files, got %v", keys(st.files))
		}
		if got := report.Nodes[0].Status; got != model.StatusNotFound {
			t.Errorf("expected status %s, got %s", model.StatusNotFound, got)
		}
	})

	t.Run("transport error on one node does not abort the crawl", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			docs: map[string]string{
				"documentation/Widgets": doc(
					"/documentation/Widgets/Broken",
					"/documentation/Widgets/Fine",
				),
				"documentation/Widgets/Fine": `{}`,
			},
			errs: map[string]error{
				"documentation/Widgets/Broken": &docc.TransportError{
					Path: "documentation/Widgets/Broken", StatusCode: 500,
				},
			},
		}
		st := newFakeStore()

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if report.Fetched != 2 || report.Failed != 1 {
			t.Errorf("unexpected tallies: fetched=%d failed=%d", report.Fetched, report.Failed)
		}
		var sawTransport bool
		for _, node := range report.Nodes {
			if node.Status == model.StatusTransportError {
				sawTransport = true
			}
		}
		if !sawTransport {
			t.Error("expected a transport_error outcome")
		}
	})

	t.Run("storage failure counts as fetched but not stored", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets":   doc("/documentation/Widgets/A"),
			"documentation/Widgets/A": `{}`,
		}}
		st := newFakeStore()
		st.err = errors.New("disk full")

		report, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if report.Fetched != 2 || report.Stored != 0 || report.Failed != 0 {
			t.Errorf("unexpected tallies: fetched=%d failed=%d stored=%d",
				report.Fetched, report.Failed, report.Stored)
		}
		// References are still followed when the write fails.
		if len(fetcher.calls) != 2 {
			t.Errorf("expected 2 fetches, got %v", fetcher.calls)
		}
	})

	t.Run("duplicate references enqueue only one fetch", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": doc(
				"/documentation/Widgets/A",
				"/documentation/Widgets/A",
				"documentation/Widgets/A",
			),
			"documentation/Widgets/A": `{}`,
		}}
		st := newFakeStore()

		_, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(fetcher.calls) != 2 {
			t.Errorf("expected 2 fetches, got %d: %v", len(fetcher.calls), fetcher.calls)
		}
	})

	t.Run("traversal is breadth-first", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": doc(
				"/documentation/Widgets/A",
				"/documentation/Widgets/B",
			),
			"documentation/Widgets/A":      doc("/documentation/Widgets/A/Deep"),
			"documentation/Widgets/B":      `{}`,
			"documentation/Widgets/A/Deep": `{}`,
		}}
		st := newFakeStore()

		_, err := NewCrawler(fetcher, st).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		want := []string{
			"documentation/Widgets",
			"documentation/Widgets/A",
			"documentation/Widgets/B",
			"documentation/Widgets/A/Deep",
		}
		if len(fetcher.calls) != len(want) {
			t.Fatalf("expected %d fetches, got %v", len(want), fetcher.calls)
		}
		for i, path := range want {
			if fetcher.calls[i] != path {
				t.Errorf("call %d: expected %s, got %s", i, path, fetcher.calls[i])
			}
		}
	})

	t.Run("empty module is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewCrawler(&fakeFetcher{}, newFakeStore()).Crawl(context.Background(), "")
		if !errors.Is(err, ErrEmptyModule) {
			t.Errorf("expected ErrEmptyModule, got %v", err)
		}
	})

	t.Run("cancelled context stops the crawl with a partial report", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": `{}`,
		}}

		report, err := NewCrawler(fetcher, newFakeStore()).Crawl(ctx, "Widgets")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if report == nil {
			t.Fatal("expected a partial report")
		}
		if len(fetcher.calls) != 0 {
			t.Errorf("expected no fetches after cancellation, got %v", fetcher.calls)
		}
	})

	t.Run("trace line is written per node", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{docs: map[string]string{
			"documentation/Widgets": `{}`,
		}}
		var trace bytes.Buffer

		_, err := NewCrawler(fetcher, newFakeStore(), WithTrace(&trace)).Crawl(context.Background(), "Widgets")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if got := trace.String(); got != "Saved documentation/Widgets\n" {
			t.Errorf("unexpected trace output: %q", got)
		}
	})

	t.Run("idempotent across runs", func(t *testing.T) {
		t.Parallel()

		docs := map[string]string{
			"documentation/Widgets":        doc("/documentation/Widgets/Gadget"),
			"documentation/Widgets/Gadget": `{}`,
		}

		first := newFakeStore()
		if _, err := NewCrawler(&fakeFetcher{docs: docs}, first).Crawl(context.Background(), "Widgets"); err != nil {
			t.Fatalf("first crawl failed: %v", err)
		}
		second := newFakeStore()
		if _, err := NewCrawler(&fakeFetcher{docs: docs}, second).Crawl(context.Background(), "Widgets"); err != nil {
			t.Fatalf("second crawl failed: %v", err)
		}

		if len(first.files) != len(second.files) {
			t.Fatalf("file sets differ: %v vs %v", keys(first.files), keys(second.files))
		}
		for name, data := range first.files {
			if !bytes.Equal(data, second.files[name]) {
				t.Errorf("contents differ for %s", name)
			}
		}
	})
}

// keys returns the map keys for error messages.
func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
