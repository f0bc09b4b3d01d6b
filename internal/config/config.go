// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// loom.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete loom configuration.
type Config struct {
	Version string `toml:"version"`

	// Agent endpoint configuration
	Agent AgentConfig `toml:"agent"`

	// Journal configuration
	Journal JournalConfig `toml:"journal"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// AgentConfig describes the remote endpoint that turns user prompts
// into protocol message batches.
type AgentConfig struct {
	// Endpoint is the URL the client POSTs prompts to.
	Endpoint string `toml:"endpoint"`
	// APIKey is sent as a bearer token when non-empty.
	APIKey string `toml:"api_key"`
	// TimeoutSecs bounds one fetch round trip.
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries is the retry budget for transient failures.
	MaxRetries int `toml:"max_retries"`
	// RequestsPerMinute throttles outbound fetches (0 = unlimited).
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// JournalConfig controls the on-disk batch journal.
type JournalConfig struct {
	// Enabled turns batch journaling on.
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database location (empty = ~/.loom/journal.db).
	Path string `toml:"path"`
}

// UIConfig contains presentation options.
type UIConfig struct {
	// ShowInspector opens the raw-batch inspector pane at startup.
	ShowInspector bool `toml:"show_inspector"`
	// CompactMode tightens vertical spacing between surfaces.
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Agent: AgentConfig{
			Endpoint:          "http://localhost:8800/v1/messages",
			TimeoutSecs:       60,
			MaxRetries:        3,
			RequestsPerMinute: 30,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// Timeout returns the agent timeout as a duration.
func (a AgentConfig) Timeout() time.Duration {
	if a.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(a.TimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the loom configuration directory (~/.loom), creating it
// if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".loom")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration: built-in defaults, then the TOML file
// if present, then environment overrides, then validation.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, cfg); decErr != nil {
				return nil, fmt.Errorf("parse %s: %w", path, decErr)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("LOOM_ENDPOINT"); v != "" {
		c.Agent.Endpoint = v
	}
	if v := os.Getenv("LOOM_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("LOOM_JOURNAL"); v != "" {
		c.Journal.Enabled = v == "1" || v == "true"
	}
}

// JournalPath resolves the journal database location.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// =============================================================================
// VALIDATION / SAVING
// =============================================================================

var errBadEndpoint = errors.New("agent endpoint must be an http(s) URL")

// Validate checks invariants and clamps out-of-range values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Agent.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errBadEndpoint, c.Agent.Endpoint)
	}
	if c.Agent.TimeoutSecs <= 0 {
		c.Agent.TimeoutSecs = 60
	}
	if c.Agent.MaxRetries < 0 {
		c.Agent.MaxRetries = 0
	}
	if c.Agent.RequestsPerMinute < 0 {
		c.Agent.RequestsPerMinute = 0
	}
	return nil
}

// Save writes the configuration to its standard location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
