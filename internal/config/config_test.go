package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", cfg.Limit, DefaultLimit)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if !cfg.SaveToDB {
		t.Error("SaveToDB should default to true")
	}
	if cfg.DBDir == "" {
		t.Error("DBDir should default to the XDG data directory")
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Module = "Widgets"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing module",
			mutate:  func(c *Config) { c.Module = "" },
			wantErr: ErrNoModule,
		},
		{
			name:    "negative limit",
			mutate:  func(c *Config) { c.Limit = -1 },
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDestination(t *testing.T) {
	t.Parallel()

	t.Run("explicit output directory wins", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Module = "Widgets"
		cfg.OutputDir = "out/docs"

		if got := cfg.Destination(); got != "out/docs" {
			t.Errorf("Destination() = %q, want %q", got, "out/docs")
		}
	})

	t.Run("falls back to the module name", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Module = "Widgets"

		if got := cfg.Destination(); got != "Widgets" {
			t.Errorf("Destination() = %q, want %q", got, "Widgets")
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("XDGDataDir() = %q, want suffix %q", XDGDataDir(), AppName)
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("XDGConfigDir() = %q, want suffix %q", XDGConfigDir(), AppName)
	}
}
