package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// referencePattern matches "essentials/<name>.json" references in a
// manifest. The character class mirrors the file names the documentation
// service produces, including parenthesized overload suffixes.
var referencePattern = regexp.MustCompile(`essentials/([A-Za-z0-9_\-\.\(\):]+\.json)`)

// Default directory and file names used by the syncer.
const (
	// DefaultManifestName is the manifest file scanned for references.
	DefaultManifestName = "README.md"

	// DefaultRawDirName is the subdirectory files are copied from.
	DefaultRawDirName = "raw"

	// DefaultDestDirName is the subdirectory files are copied into.
	DefaultDestDirName = "essentials"
)

// Result summarizes one directory's sync.
type Result struct {
	// Copied lists the file names that were copied, in manifest order.
	Copied []string

	// Missing lists referenced names with no exact or prefix match in raw/.
	Missing []string
}

// Syncer mirrors manifest-referenced files from raw/ into essentials/.
type Syncer struct {
	// manifestName is the manifest file name inside each directory.
	manifestName string

	// rawDirName is the source subdirectory name.
	rawDirName string

	// destDirName is the destination subdirectory name.
	destDirName string
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithManifestName sets the manifest file name.
func WithManifestName(name string) SyncerOption {
	return func(s *Syncer) {
		s.manifestName = name
	}
}

// WithRawDirName sets the source subdirectory name.
func WithRawDirName(name string) SyncerOption {
	return func(s *Syncer) {
		s.rawDirName = name
	}
}

// WithDestDirName sets the destination subdirectory name.
func WithDestDirName(name string) SyncerOption {
	return func(s *Syncer) {
		s.destDirName = name
	}
}

// NewSyncer creates a Syncer with the default directory layout.
func NewSyncer(opts ...SyncerOption) *Syncer {
	s := &Syncer{
		manifestName: DefaultManifestName,
		rawDirName:   DefaultRawDirName,
		destDirName:  DefaultDestDirName,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sync processes a single directory.
// A directory without a manifest yields an empty result, not an error.
// Referenced names are processed in sorted order so output is stable.
func (s *Syncer) Sync(dir string) (*Result, error) {
	content, err := os.ReadFile(filepath.Join(dir, s.manifestName)) //nolint:gosec // User-provided directory is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{}, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	names := make(map[string]bool)
	for _, m := range referencePattern.FindAllStringSubmatch(string(content), -1) {
		names[m[1]] = true
	}
	if len(names) == 0 {
		return &Result{}, nil
	}

	rawDir := filepath.Join(dir, s.rawDirName)
	destDir := filepath.Join(dir, s.destDirName)
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	result := &Result{}
	for _, name := range sorted {
		copied, err := s.copyFile(rawDir, destDir, name)
		if err != nil {
			return nil, err
		}
		if copied == "" {
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Copied = append(result.Copied, copied)
	}

	return result, nil
}

// SyncAll processes every non-hidden child directory of root in sorted
// order and returns the non-empty results keyed by directory name.
func (s *Syncer) SyncAll(root string) (map[string]*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory: %w", err)
	}

	results := make(map[string]*Result)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		result, err := s.Sync(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to sync %s: %w", entry.Name(), err)
		}
		if len(result.Copied) == 0 && len(result.Missing) == 0 {
			continue
		}
		results[entry.Name()] = result
	}

	return results, nil
}

// copyFile copies one referenced file from rawDir into destDir.
// It returns the name of the copied file, or "" when no exact or prefix
// candidate exists.
//
// The prefix fallback picks the shortest candidate name; ties on length
// are broken lexicographically so the choice is deterministic.
func (s *Syncer) copyFile(rawDir, destDir, name string) (string, error) {
	if _, err := os.Stat(filepath.Join(rawDir, name)); err == nil {
		if err := copyContents(filepath.Join(rawDir, name), filepath.Join(destDir, name)); err != nil {
			return "", err
		}
		return name, nil
	}

	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read raw directory: %w", err)
	}

	base := strings.TrimSuffix(name, ".json")
	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), base) {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	chosen := candidates[0]
	if err := copyContents(filepath.Join(rawDir, chosen), filepath.Join(destDir, chosen)); err != nil {
		return "", err
	}
	return chosen, nil
}

// copyContents copies a file, preserving its mode.
func copyContents(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	in, err := os.Open(src) //nolint:gosec // Paths derive from the user-provided directory
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish copy: %w", err)
	}

	return nil
}
