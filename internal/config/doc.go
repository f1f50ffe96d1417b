// Package config provides configuration structures and utilities for
// docfetch. It defines the crawl options populated from CLI flags, the
// optional YAML configuration file with per-module overrides, and the XDG
// directory helpers used for the crawl history database.
package config
