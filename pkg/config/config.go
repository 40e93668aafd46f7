// Package config loads swbrowse settings from INI files.
// values are resolved with fallback chain: local .swbrowse/config → global
// ~/.config/swbrowse/config → embedded defaults.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

//go:embed defaults/config
var defaultsFS embed.FS

// DefaultsFS returns the embedded defaults filesystem.
func DefaultsFS() embed.FS { return defaultsFS }

// localDir is the per-project config directory, relative to the working directory.
const localDir = ".swbrowse"

// Config is the resolved configuration.
type Config struct {
	Values
	Colors ColorConfig

	ConfigDir string // global config directory in use
}

// Options controls where Load looks for config files.
type Options struct {
	ConfigDir string // global config directory, empty uses DefaultConfigDir
	LocalDir  string // local config directory, empty uses .swbrowse in the working directory
	Install   bool   // write the default config into ConfigDir when missing
}

// DefaultConfigDir returns ~/.config/swbrowse, or .swbrowse-global when the home directory
// cannot be determined.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swbrowse-global"
	}
	return filepath.Join(home, ".config", "swbrowse")
}

// Load resolves the configuration from files described by opts.
func Load(opts Options) (*Config, error) {
	if opts.ConfigDir == "" {
		opts.ConfigDir = DefaultConfigDir()
	}
	if opts.LocalDir == "" {
		opts.LocalDir = localDir
	}

	if opts.Install {
		if err := newDefaultsInstaller(defaultsFS).Install(opts.ConfigDir); err != nil {
			return nil, fmt.Errorf("install defaults: %w", err)
		}
	}

	globalPath := filepath.Join(opts.ConfigDir, "config")
	localPath := filepath.Join(opts.LocalDir, "config")

	values, err := newValuesLoader(defaultsFS).Load(localPath, globalPath)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	colors, err := newColorLoader(defaultsFS).Load(localPath, globalPath)
	if err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}
	return &Config{Values: values, Colors: colors, ConfigDir: opts.ConfigDir}, nil
}

// MinLoading returns min_loading_ms as a duration.
func (c *Config) MinLoading() time.Duration {
	return time.Duration(c.MinLoadingMs) * time.Millisecond
}

// RequestTimeout returns request_timeout_ms as a duration, 0 means none.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}
