package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted user configuration, stored as JSON at
// ~/.gitmuse.json. Environment variables (GITMUSE_PROVIDER, GITMUSE_MODEL)
// override the file, and command-line flags override both.
type Config struct {
	// Provider is the llm registry id to use (openai, anthropic, gemini, ...).
	Provider string `json:"provider"`

	// Model pins an explicit model id. Empty means auto-select from the
	// provider's catalog.
	Model string `json:"model,omitempty"`

	// MaxTokens caps the per-command completion budget.
	MaxTokens int `json:"max_tokens"`

	// BaseBranch is the branch PR descriptions and changelogs diff against.
	BaseBranch string `json:"base_branch"`

	// HistoryDB is the path of the suggestion history database. Empty means
	// the default next to the config file.
	HistoryDB string `json:"history_db,omitempty"`

	// BaseURLs points providers at different endpoints, keyed by provider id
	// (proxies, self-hosted gateways).
	BaseURLs map[string]string `json:"base_urls,omitempty"`
}

const fileName = ".gitmuse.json"

func DefaultConfig() *Config {
	return &Config{
		Provider:   "openai",
		MaxTokens:  2048,
		BaseBranch: "main",
	}
}

// DefaultPath returns ~/.gitmuse.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// Load reads the config at path, layering it over the defaults. A missing
// file is not an error; environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GITMUSE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("GITMUSE_MODEL"); v != "" {
		c.Model = v
	}
}

// Save writes the config as indented JSON. Provider settings are private to
// the user, so the file is not group readable.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// HistoryPath returns the suggestion database path, defaulting to a sibling
// of the config file.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryDB != "" {
		return c.HistoryDB, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gitmuse.db"), nil
}
