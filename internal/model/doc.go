// Package model defines the core data structures shared across docfetch.
//
// It contains the crawl report produced by the crawler, the per-node
// outcome records that make up a report, and the findings emitted by the
// secret scanner. The structures are plain data with JSON tags so they can
// be rendered by any report writer or stored in the history database
// without conversion.
package model
