// Package secrets implements a lightweight heuristic scanner for
// accidentally committed credentials.
//
// The scanner walks a file tree, skips directories and file types that are
// known to be binary or generated, and matches the remaining text files
// against a table of known secret signatures (cloud provider keys, generic
// API key literals, private key markers).
//
// Design decision: We use a table of named regexp patterns rather than a
// full entropy-based detector because:
//  1. The known signatures catch the overwhelming majority of real leaks
//  2. Entropy heuristics produce noisy results on test fixtures and hashes
//  3. A simple table is easy to audit and extend
//
// The same pattern table is reused by the log package to mask
// secret-looking values before they reach the terminal.
package secrets
