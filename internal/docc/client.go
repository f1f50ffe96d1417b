package docc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Default client settings.
const (
	// DefaultBaseURL is the public endpoint of the documentation data
	// service. Each topic path maps to "<DefaultBaseURL>/<path>.json".
	DefaultBaseURL = "https://developer.apple.com/tutorials/data"

	// DefaultTimeout is the per-request timeout. Documentation payloads
	// are small, so 30 seconds is generous even on slow links.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits the response body size. The largest real
	// documentation documents are a few megabytes; 16MB leaves headroom
	// while preventing memory exhaustion from a misbehaving server.
	DefaultMaxBodySize = 16 * 1024 * 1024

	// DefaultUserAgent identifies docfetch in HTTP requests.
	// A descriptive User-Agent lets service operators identify the traffic.
	DefaultUserAgent = "docfetch/1.0 (+https://github.com/nao1215/docfetch)"
)

// Client fetches JSON documents from the documentation service.
//
// Design decision: We use a struct holding the http.Client rather than
// passing one on each call because:
//  1. Timeout and transport configuration should be consistent per run
//  2. Connection pooling works better with a shared client
//  3. Tests can inject an httptest server via WithHTTPClient/WithBaseURL
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client

	// baseURL is the service endpoint, without a trailing slash.
	baseURL string

	// userAgent is the User-Agent header sent with each request.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom service endpoint.
// A trailing slash is removed so URL joining stays uniform.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithHTTPClient replaces the underlying http.Client.
// Mainly useful for tests that need a custom transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the request URL for a topic path.
func (c *Client) URL(path string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, strings.TrimPrefix(path, "/"))
}

// Fetch retrieves the JSON document for a topic path.
//
// It returns ErrNotFound for a 404 response and a *TransportError for any
// other failure, including a payload that is not valid JSON. The returned
// bytes are the raw response body; callers that need stable formatting
// re-indent before persisting.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}

	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Path: path, Err: errors.New("response is not valid JSON")}
	}

	return body, nil
}
