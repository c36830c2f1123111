// ABOUTME: Lift configuration management.
// ABOUTME: Handles data location, assistant settings, and resolver tuning.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/lift/internal/assistant"
	"github.com/harperreed/lift/internal/resolver"
	"github.com/harperreed/lift/internal/storage"
)

// Config stores lift tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; lift.db lives here.
	// Supports ~ expansion. Defaults to ~/.local/share/lift.
	DataDir string `json:"data_dir,omitempty"`

	// Assistant configures the AI coach.
	Assistant AssistantConfig `json:"assistant,omitempty"`

	// Resolver tunes fuzzy exercise-name matching.
	Resolver ResolverConfig `json:"resolver,omitempty"`
}

// AssistantConfig holds model settings. APIKey is optional; the
// ANTHROPIC_API_KEY environment variable takes precedence.
type AssistantConfig struct {
	Model  string `json:"model,omitempty"`
	APIKey string `json:"api_key,omitempty"`
}

// ResolverConfig exposes the matching thresholds. Zero values fall back
// to the resolver's defaults.
type ResolverConfig struct {
	MinScore float64 `json:"min_score,omitempty"`
	Margin   float64 `json:"margin,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetModel returns the configured assistant model, defaulting to the
// client's default.
func (c *Config) GetModel() string {
	if c.Assistant.Model == "" {
		return assistant.DefaultModel
	}
	return c.Assistant.Model
}

// ResolverPolicy returns the resolver thresholds as a policy.
func (c *Config) ResolverPolicy() resolver.Policy {
	return resolver.Policy{
		MinScore: c.Resolver.MinScore,
		Margin:   c.Resolver.Margin,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store at the configured location.
func (c *Config) OpenStorage() (*storage.DB, error) {
	dbPath := filepath.Join(c.GetDataDir(), "lift.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lift", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
