package llm

import (
	"errors"
	"sort"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	desc, err := reg.Lookup("anthropic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Family != FamilyAnthropic {
		t.Errorf("expected anthropic family, got %s", desc.Family)
	}
	if desc.AnthropicVersion != "2023-06-01" {
		t.Errorf("expected anthropic-version 2023-06-01, got %q", desc.AnthropicVersion)
	}

	// Ids are matched case-insensitively.
	if _, err := reg.Lookup("OpenAI"); err != nil {
		t.Errorf("mixed-case lookup failed: %v", err)
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Lookup("nonesuch")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	var up *UnknownProviderError
	if !errors.As(err, &up) {
		t.Fatalf("expected UnknownProviderError, got %T", err)
	}
	if up.ID != "nonesuch" {
		t.Errorf("expected id nonesuch, got %q", up.ID)
	}
	if !IsConfigError(err) {
		t.Error("unknown provider should classify as a config error")
	}
}

func TestRegistryIDs(t *testing.T) {
	reg := DefaultRegistry()
	ids := reg.IDs()

	if len(ids) != 10 {
		t.Fatalf("expected 10 providers, got %d: %v", len(ids), ids)
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("ids not sorted: %v", ids)
	}
	for _, want := range []string{"openai", "groq", "together", "deepinfra", "openrouter", "xai", "mistral", "ollama", "anthropic", "gemini"} {
		found := false
		for _, id := range ids {
			if id == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("provider %s missing from registry", want)
		}
	}
}

func TestWithBaseURLs(t *testing.T) {
	reg := DefaultRegistry().WithBaseURLs(map[string]string{
		"openai":   "http://proxy.internal/v1",
		"nonesuch": "http://ignored",
		"groq":     "",
	})

	desc, err := reg.Lookup("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.BaseURL != "http://proxy.internal/v1" {
		t.Errorf("override not applied: %q", desc.BaseURL)
	}

	// Empty overrides keep the default.
	desc, _ = reg.Lookup("groq")
	if desc.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("empty override clobbered base: %q", desc.BaseURL)
	}

	// The source registry is untouched.
	desc, _ = DefaultRegistry().Lookup("openai")
	if desc.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("default registry mutated: %q", desc.BaseURL)
	}
}

func TestDefaultRegistryOllamaOverride(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://10.0.0.5:11434/v1")

	desc, err := DefaultRegistry().Lookup("ollama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.BaseURL != "http://10.0.0.5:11434/v1" {
		t.Errorf("override not applied, got %q", desc.BaseURL)
	}
	if desc.KeyEnv != "" {
		t.Errorf("ollama should not require a key, got env %q", desc.KeyEnv)
	}
}

func TestDefaultRegistryOllamaDefault(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")

	desc, err := DefaultRegistry().Lookup("ollama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("expected localhost default, got %q", desc.BaseURL)
	}
}
