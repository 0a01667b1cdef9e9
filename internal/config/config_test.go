// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// useTempConfig points the config path at a fresh temp file and clears the
// cached global.
func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("RECIPES_CONFIG", path)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Meld.DefaultOutput != "analysis" {
		t.Errorf("Expected default output 'analysis', got %q", cfg.Meld.DefaultOutput)
	}
	if cfg.Meld.WatchDebounceMs != 300 {
		t.Errorf("Expected default debounce 300, got %d", cfg.Meld.WatchDebounceMs)
	}
	if cfg.Scaffold.TemplatePrefix != "cookiecutter-" {
		t.Errorf("Expected default template prefix, got %q", cfg.Scaffold.TemplatePrefix)
	}
	if cfg.UI.ColorMode != "auto" {
		t.Errorf("Expected default color mode 'auto', got %q", cfg.UI.ColorMode)
	}
}

func TestValidate_ClampsAndReplaces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Meld.DefaultOutput = "banana"
	cfg.Meld.WatchDebounceMs = 10
	cfg.UI.ColorMode = "sometimes"
	cfg.Scaffold.TemplatePrefix = ""

	cfg.Validate()

	if cfg.Meld.DefaultOutput != "analysis" {
		t.Errorf("unknown output format should reset, got %q", cfg.Meld.DefaultOutput)
	}
	if cfg.Meld.WatchDebounceMs != 50 {
		t.Errorf("debounce should clamp to 50, got %d", cfg.Meld.WatchDebounceMs)
	}
	if cfg.UI.ColorMode != "auto" {
		t.Errorf("unknown color mode should reset, got %q", cfg.UI.ColorMode)
	}
	if cfg.Scaffold.TemplatePrefix != "cookiecutter-" {
		t.Errorf("empty prefix should reset, got %q", cfg.Scaffold.TemplatePrefix)
	}

	cfg.Meld.WatchDebounceMs = 60000
	cfg.Validate()
	if cfg.Meld.WatchDebounceMs != 5000 {
		t.Errorf("debounce should clamp to 5000, got %d", cfg.Meld.WatchDebounceMs)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Meld.DefaultOutput != "analysis" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	path := useTempConfig(t)
	if err := os.WriteFile(path, []byte("this is = not [ valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempConfig(t)

	cfg := DefaultConfig()
	cfg.Meld.DefaultOutput = "json"
	cfg.Meld.WatchDebounceMs = 500
	cfg.Scaffold.Excludes = []string{"dist", "coverage"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Meld.DefaultOutput != "json" || loaded.Meld.WatchDebounceMs != 500 {
		t.Errorf("round trip lost meld settings: %+v", loaded.Meld)
	}
	if len(loaded.Scaffold.Excludes) != 2 {
		t.Errorf("round trip lost excludes: %v", loaded.Scaffold.Excludes)
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("meld.default_output", "diff"); err != nil {
		t.Errorf("Set failed: %v", err)
	}
	if cfg.Meld.DefaultOutput != "diff" {
		t.Errorf("Expected 'diff', got %q", cfg.Meld.DefaultOutput)
	}

	if err := cfg.Set("meld.default_output", "banana"); err == nil {
		t.Error("Expected error for invalid output format")
	}
	if err := cfg.Set("ui.color_mode", "sometimes"); err == nil {
		t.Error("Expected error for invalid color mode")
	}
	if err := cfg.Set("nonsense.key", "x"); err == nil {
		t.Error("Expected error for unknown key")
	}

	if err := cfg.Set("scaffold.template_prefix", "tpl-"); err != nil {
		t.Errorf("Set failed: %v", err)
	}
	if cfg.Scaffold.TemplatePrefix != "tpl-" {
		t.Errorf("Expected 'tpl-', got %q", cfg.Scaffold.TemplatePrefix)
	}
}

func TestGlobal_ConcurrentAccess(t *testing.T) {
	useTempConfig(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = Global()
		}()
		go func() {
			defer wg.Done()
			SetGlobal(DefaultConfig())
		}()
	}
	wg.Wait()

	if Global() == nil {
		t.Error("Global returned nil")
	}
}
