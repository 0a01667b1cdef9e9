// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// recipes CLI.
//
// Configuration lives in ~/.recipes/config.toml. Missing files fall back
// to built-in defaults; unknown values are clamped or replaced during
// validation so a hand-edited file can never leave the tool unusable.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/recipes/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete recipes configuration.
type Config struct {
	Version string `toml:"version"`

	Meld     MeldConfig     `toml:"meld"`
	Scaffold ScaffoldConfig `toml:"scaffold"`
	UI       UIConfig       `toml:"ui"`
}

// MeldConfig configures the meld command.
type MeldConfig struct {
	// DefaultOutput is the output format used when -o is not given:
	// "analysis", "json", "diff" or "prompt".
	DefaultOutput string `toml:"default_output"`
	// WatchDebounceMs is the debounce window for --watch re-runs.
	WatchDebounceMs int `toml:"watch_debounce_ms"`
}

// ScaffoldConfig configures the generalize command.
type ScaffoldConfig struct {
	// Excludes are directory and file names skipped in addition to the
	// built-in exclusion list.
	Excludes []string `toml:"excludes"`
	// TemplatePrefix is prepended to derived template directory names.
	TemplatePrefix string `toml:"template_prefix"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	// ColorMode is "auto", "always" or "never".
	ColorMode string `toml:"color_mode"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Meld: MeldConfig{
			DefaultOutput:   "analysis",
			WatchDebounceMs: 300,
		},
		Scaffold: ScaffoldConfig{
			TemplatePrefix: "cookiecutter-",
		},
		UI: UIConfig{
			ColorMode: "auto",
		},
	}
}

// Validate clamps out-of-range values and replaces unknown enum values
// with their defaults. It never fails.
func (c *Config) Validate() {
	switch c.Meld.DefaultOutput {
	case "analysis", "json", "diff", "prompt":
	default:
		c.Meld.DefaultOutput = "analysis"
	}
	if c.Meld.WatchDebounceMs < 50 {
		c.Meld.WatchDebounceMs = 50
	}
	if c.Meld.WatchDebounceMs > 5000 {
		c.Meld.WatchDebounceMs = 5000
	}
	switch c.UI.ColorMode {
	case "auto", "always", "never":
	default:
		c.UI.ColorMode = "auto"
	}
	if c.Scaffold.TemplatePrefix == "" {
		c.Scaffold.TemplatePrefix = "cookiecutter-"
	}
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Path returns the config file location, honoring RECIPES_CONFIG for
// tests and unusual setups.
func Path() string {
	if p := os.Getenv("RECIPES_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".recipes", "config.toml")
	}
	return filepath.Join(home, ".recipes", "config.toml")
}

// Load reads the config file, falling back to defaults when it does not
// exist. A malformed file is an error; a missing one is not.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Validate()
	return cfg, nil
}

// Save writes the config atomically.
func (c *Config) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(Path(), buf.Bytes(), 0644)
}

// Set updates a single dotted key, used by "recipes config set".
func (c *Config) Set(key, value string) error {
	switch key {
	case "meld.default_output":
		switch value {
		case "analysis", "json", "diff", "prompt":
			c.Meld.DefaultOutput = value
		default:
			return fmt.Errorf("invalid output format %q", value)
		}
	case "scaffold.template_prefix":
		c.Scaffold.TemplatePrefix = value
	case "ui.color_mode":
		switch value {
		case "auto", "always", "never":
			c.UI.ColorMode = value
		default:
			return fmt.Errorf("invalid color mode %q", value)
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	c.Validate()
	return nil
}

// =============================================================================
// GLOBAL CONFIG ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide config, loading it on first use. A load
// error falls back to defaults; commands that need to report the error
// call Load directly.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide config.
func SetGlobal(c *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = c
}

// ResetGlobalForTesting clears the cached global config.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}
