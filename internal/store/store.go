package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName derives the storage file name for a topic path.
// Path separators are replaced with underscores and ".json" is appended.
func FileName(path string) string {
	return strings.ReplaceAll(path, "/", "_") + ".json"
}

// FileStore writes JSON documents into a destination directory.
//
// Design decision: The destination directory is created lazily on the
// first write rather than in the constructor so that constructing a store
// has no side effects and a crawl that fetches nothing leaves no empty
// directory behind.
type FileStore struct {
	// dir is the destination directory.
	dir string

	// created tracks whether dir has been created.
	created bool
}

// NewFileStore creates a FileStore for the given destination directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the destination directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Store writes a JSON document under the given file name.
//
// The raw payload is re-indented with two spaces before writing. Key order
// from the source document is preserved, so output is reproducible across
// runs. Existing files are overwritten.
func (s *FileStore) Store(name string, data []byte) error {
	if !s.created {
		if err := os.MkdirAll(s.dir, 0750); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
		s.created = true
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format document: %w", err)
	}
	buf.WriteByte('\n')

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}
