// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad backend url", func(c *Config) { c.Backend.URL = "not a url" }, "backend.url"},
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://host" }, "backend.url"},
		{"zero timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, "backend.timeout_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"tiny wrap", func(c *Config) { c.UI.WordWrap = 5 }, "ui.word_wrap"},
		{"negative history", func(c *Config) { c.History.MaxEntries = -1 }, "history.max_entries"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should mention field %q", err, tc.field)
			}
		})
	}
}

func TestSetDefaultsFillsOmittedSections(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	if cfg.Backend.URL == "" {
		t.Error("backend URL should be filled")
	}
	if cfg.UI.WordWrap == 0 {
		t.Error("word wrap should be filled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("filled config should validate: %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RAGCHAT_BACKEND_URL", "http://example.com:9000")
	t.Setenv("RAGCHAT_TIMEOUT_SECS", "30")
	t.Setenv("RAGCHAT_THEME", "light")
	t.Setenv("RAGCHAT_HISTORY", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "http://example.com:9000" {
		t.Errorf("backend URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 30 {
		t.Errorf("timeout = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled")
	}
}

func TestLoadTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.0.0"

[backend]
url = "http://rag.local:8000"
timeout_secs = 60

[ui]
theme = "dark"
word_wrap = 100
show_sources = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if cfg.Backend.URL != "http://rag.local:8000" {
		t.Errorf("backend URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSecs != 60 {
		t.Errorf("timeout = %d", cfg.Backend.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.WordWrap != 100 || cfg.UI.ShowSources {
		t.Errorf("ui section not applied: %+v", cfg.UI)
	}
}

func TestLoadTOMLFixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`version = "1.0.0"`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

// TestGlobal_ConcurrentAccess verifies Global and SetGlobal are race-free.
// Run with: go test -race ./internal/config/
func TestGlobal_ConcurrentAccess(t *testing.T) {
	SetGlobal(Default())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
