package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// restoring the previous directory on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("parses defaults and per-module overrides", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".docfetch")
		content := `defaults:
  limit: 100
  output: docs
modules:
  Widgets:
    limit: 10
    base_url: https://example.com/data
  Gadgets:
    output: gadget-docs
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() failed: %v", err)
		}

		if f.Defaults.Limit != 100 {
			t.Errorf("Defaults.Limit = %d, want 100", f.Defaults.Limit)
		}
		if f.Defaults.Output != "docs" {
			t.Errorf("Defaults.Output = %q, want %q", f.Defaults.Output, "docs")
		}

		widgets := f.Modules["Widgets"]
		if widgets.Limit != 10 {
			t.Errorf("Widgets.Limit = %d, want 10", widgets.Limit)
		}
		if widgets.BaseURL != "https://example.com/data" {
			t.Errorf("Widgets.BaseURL = %q", widgets.BaseURL)
		}

		if f.Modules["Gadgets"].Output != "gadget-docs" {
			t.Errorf("Gadgets.Output = %q", f.Modules["Gadgets"].Output)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".docfetch")
		if err := os.WriteFile(path, []byte("modules: [not a map"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for invalid yaml")
		}
	})

	t.Run("empty file yields usable zero values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".docfetch")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() failed: %v", err)
		}
		if f.Modules == nil {
			t.Error("Modules map should be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path that exists is returned as-is", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("modules:\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit path that does not exist yields empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("finds the default file in the working directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("modules:\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		chdir(t, dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("FindConfigFile() = %q, want a %s path", got, DefaultConfigFile)
		}
	})
}
