package secrets

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nao1215/docfetch/internal/model"
)

// defaultIgnoreDirs are directory names skipped on every scan.
// They hold build output, VCS metadata, or third-party code that the
// repository owner did not write.
var defaultIgnoreDirs = map[string]bool{
	".git":          true,
	"build":         true,
	"DerivedData":   true,
	"Tests.xcresult": true,
	"xcuserdata":    true,
	"__pycache__":   true,
	"node_modules":  true,
}

// binaryExtensions are file extensions that are typically binary or
// generated. Files with these extensions are skipped without sniffing.
var binaryExtensions = map[string]bool{
	".png":       true,
	".jpg":       true,
	".jpeg":      true,
	".gif":       true,
	".pdf":       true,
	".xcassets":  true,
	".xcarchive": true,
	".ipa":       true,
	".zip":       true,
	".bin":       true,
	".dylib":     true,
}

// previewLen is the maximum length of a finding's matched-value preview.
const previewLen = 60

// Scanner walks a file tree and reports secret-looking content.
// A zero-configured Scanner (from NewScanner with no options) uses the
// built-in patterns and skip lists.
type Scanner struct {
	// patterns are the signatures to match against file content.
	patterns []Pattern

	// ignoreDirs are directory names to skip entirely.
	ignoreDirs map[string]bool

	// ignoreGlobs are additional user-supplied path patterns to skip.
	// Patterns use doublestar glob syntax (e.g. "**/testdata/**") and are
	// matched against the slash-separated path relative to the scan root.
	ignoreGlobs []string
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithPatterns replaces the default signature table.
func WithPatterns(patterns []Pattern) ScannerOption {
	return func(s *Scanner) {
		s.patterns = patterns
	}
}

// WithIgnoreGlobs adds path glob patterns to skip during scanning.
func WithIgnoreGlobs(globs []string) ScannerOption {
	return func(s *Scanner) {
		s.ignoreGlobs = append(s.ignoreGlobs, globs...)
	}
}

// WithIgnoreDirs adds directory names to skip during scanning.
func WithIgnoreDirs(names ...string) ScannerOption {
	return func(s *Scanner) {
		for _, name := range names {
			s.ignoreDirs[name] = true
		}
	}
}

// NewScanner creates a Scanner with the default patterns and skip lists.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		patterns:   DefaultPatterns(),
		ignoreDirs: make(map[string]bool, len(defaultIgnoreDirs)),
	}
	for name := range defaultIgnoreDirs {
		s.ignoreDirs[name] = true
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan walks root and returns all findings in walk order.
// Unreadable or binary files are skipped, not reported as errors; only a
// missing root or a failed directory walk aborts the scan.
func (s *Scanner) Scan(root string) ([]model.Finding, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root: %w", err)
	}
	if !info.IsDir() {
		return s.scanFile(root, filepath.Base(root))
	}

	var findings []model.Finding
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.ignoreDirs[d.Name()] || s.matchesIgnoreGlob(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if s.matchesIgnoreGlob(rel) {
			return nil
		}

		fileFindings, scanErr := s.scanFile(path, rel)
		if scanErr != nil {
			// Unreadable files are skipped, matching the skip policy for
			// binary content.
			return nil
		}
		findings = append(findings, fileFindings...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan walk failed: %w", err)
	}

	return findings, nil
}

// matchesIgnoreGlob checks the relative path against user ignore globs.
func (s *Scanner) matchesIgnoreGlob(rel string) bool {
	for _, glob := range s.ignoreGlobs {
		if ok, err := doublestar.Match(glob, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// scanFile matches a single file against all patterns.
// Binary and non-UTF-8 files yield no findings.
func (s *Scanner) scanFile(path, rel string) ([]model.Finding, error) {
	if binaryExtensions[filepath.Ext(path)] {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Scanning user-specified trees is the point
	if err != nil {
		return nil, err
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, nil
	}

	var findings []model.Finding
	for i, line := range strings.Split(string(data), "\n") {
		for _, p := range s.patterns {
			for _, match := range p.Regexp.FindAllString(line, -1) {
				findings = append(findings, model.Finding{
					Path:        rel,
					Rule:        p.Name,
					Description: p.Description,
					Line:        i + 1,
					Preview:     previewOf(match),
				})
			}
		}
	}

	return findings, nil
}

// previewOf truncates a matched value for display.
func previewOf(match string) string {
	preview := strings.ReplaceAll(match, "\n", " ")
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	return preview
}
