package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("GITMUSE_PROVIDER", "")
	t.Setenv("GITMUSE_MODEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("default provider = %q", cfg.Provider)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("default max_tokens = %d", cfg.MaxTokens)
	}
	if cfg.BaseBranch != "main" {
		t.Errorf("default base_branch = %q", cfg.BaseBranch)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	t.Setenv("GITMUSE_PROVIDER", "")
	t.Setenv("GITMUSE_MODEL", "")

	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"provider":"anthropic","model":"claude-sonnet-4"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4" {
		t.Errorf("model = %q", cfg.Model)
	}
	// Unspecified fields keep their defaults.
	if cfg.MaxTokens != 2048 {
		t.Errorf("max_tokens = %d, want default 2048", cfg.MaxTokens)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"provider":"anthropic"}`), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GITMUSE_PROVIDER", "groq")
	t.Setenv("GITMUSE_MODEL", "llama-3.3-70b")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "groq" {
		t.Errorf("env override lost, provider = %q", cfg.Provider)
	}
	if cfg.Model != "llama-3.3-70b" {
		t.Errorf("env override lost, model = %q", cfg.Model)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{provider}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GITMUSE_PROVIDER", "")
	t.Setenv("GITMUSE_MODEL", "")

	path := filepath.Join(t.TempDir(), "cfg.json")
	orig := &Config{Provider: "gemini", Model: "gemini-2.0-flash", MaxTokens: 2048, BaseBranch: "develop"}
	if err := orig.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 perms, got %v", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Provider != orig.Provider || loaded.Model != orig.Model ||
		loaded.MaxTokens != orig.MaxTokens || loaded.BaseBranch != orig.BaseBranch {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, orig)
	}
}

func TestHistoryPathOverride(t *testing.T) {
	cfg := &Config{HistoryDB: "/tmp/custom.db"}
	p, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != "/tmp/custom.db" {
		t.Errorf("override lost: %s", p)
	}
}
