// ABOUTME: Tests for configuration loading and defaults.
// ABOUTME: Covers path expansion, fallbacks, and save/load round-trips.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/lift/internal/assistant"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir failed: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/lift-data", filepath.Join(home, "lift-data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetDataDir() == "" {
		t.Error("GetDataDir should fall back to a default")
	}
	if cfg.GetModel() != assistant.DefaultModel {
		t.Errorf("GetModel = %q, want default", cfg.GetModel())
	}

	cfg.Assistant.Model = "claude-opus-4-1"
	if cfg.GetModel() != "claude-opus-4-1" {
		t.Errorf("GetModel = %q", cfg.GetModel())
	}
}

func TestLoadMissingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{DataDir: "~/lift-test"}
	cfg.Assistant.Model = "claude-sonnet-4-5"
	cfg.Resolver.MinScore = 0.6
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "~/lift-test" {
		t.Errorf("DataDir = %q", loaded.DataDir)
	}
	if loaded.Assistant.Model != "claude-sonnet-4-5" {
		t.Errorf("Model = %q", loaded.Assistant.Model)
	}
	if loaded.Resolver.MinScore != 0.6 {
		t.Errorf("MinScore = %v", loaded.Resolver.MinScore)
	}
}
