// Package log provides logging utilities for docfetch.
//
// The main component is MaskHandler, an slog.Handler wrapper that redacts
// secret-looking attribute values before they reach the underlying handler.
// docfetch logs URLs, HTTP headers, and file content excerpts; masking at
// the handler level guarantees a credential that slips into any log call is
// never written to the terminal or a log file.
//
// The value signatures are shared with the secrets package so the scanner
// and the logger agree on what counts as a secret.
package log
