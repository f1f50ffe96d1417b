package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".docfetch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ModuleConfig holds per-module crawl overrides.
type ModuleConfig struct {
	// Limit overrides the visit budget for this module. 0 means inherit.
	Limit int `yaml:"limit,omitempty"`

	// BaseURL overrides the service endpoint for this module.
	BaseURL string `yaml:"base_url,omitempty"`

	// Output overrides the destination directory for this module.
	Output string `yaml:"output,omitempty"`
}

// File is the parsed configuration file.
type File struct {
	// Defaults apply to every module unless overridden.
	Defaults ModuleConfig `yaml:"defaults"`

	// Modules maps module names to their overrides.
	Modules map[string]ModuleConfig `yaml:"modules"`
}

// LoadConfigFile loads module configurations from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Modules == nil {
		f.Modules = make(map[string]ModuleConfig)
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .docfetch in the current directory
// 3. Look for .docfetch in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
