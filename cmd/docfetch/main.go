// Package main provides the entry point for the docfetch CLI.
//
// docfetch mirrors a module's documentation graph from the remote
// documentation service into local JSON files, one file per topic.
//
// Usage:
//
//	docfetch fetch <module>
//	docfetch fetch --limit 50 <module>
//
// See --help for all available options.
package main

// main is the entry point for docfetch.
func main() {
	Execute()
}
