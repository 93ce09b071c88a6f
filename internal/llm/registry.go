package llm

import (
	"os"
	"sort"
	"strings"
)

// Family identifies the wire protocol a provider speaks. Every provider maps
// to exactly one of the three families; all protocol-specific behavior hangs
// off this value (see protocol.go).
type Family int

const (
	// FamilyOpenAI is the widely-replicated OpenAI chat-completions shape,
	// used by OpenAI itself and a long tail of compatible vendors.
	FamilyOpenAI Family = iota
	// FamilyAnthropic is Anthropic's native messages API.
	FamilyAnthropic
	// FamilyGemini is Google's native generateContent API.
	FamilyGemini
)

func (f Family) String() string {
	switch f {
	case FamilyOpenAI:
		return "openai-compatible"
	case FamilyAnthropic:
		return "anthropic"
	case FamilyGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// ProviderDescriptor is the static configuration for one provider. Descriptors
// are built once at startup and never mutated.
type ProviderDescriptor struct {
	ID      string
	Family  Family
	BaseURL string

	// KeyEnv names the environment variable holding the API key. Empty means
	// the provider is unauthenticated (local endpoints like Ollama).
	KeyEnv string

	// ExtraHeaders are advisory headers some providers accept. Entries with
	// empty values are omitted from requests, never sent as empty strings.
	ExtraHeaders map[string]string

	// AnthropicVersion is the value of the anthropic-version header. Only
	// meaningful for FamilyAnthropic.
	AnthropicVersion string
}

// Registry is an immutable table of provider descriptors keyed by id. It is
// constructed once and injected into the Invoker, so tests can substitute a
// registry pointing at fake endpoints.
type Registry struct {
	providers map[string]ProviderDescriptor
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(descs ...ProviderDescriptor) *Registry {
	m := make(map[string]ProviderDescriptor, len(descs))
	for _, d := range descs {
		m[d.ID] = d
	}
	return &Registry{providers: m}
}

// Lookup returns the descriptor for a provider id.
func (r *Registry) Lookup(id string) (ProviderDescriptor, error) {
	d, ok := r.providers[strings.ToLower(id)]
	if !ok {
		return ProviderDescriptor{}, &UnknownProviderError{ID: id}
	}
	return d, nil
}

// WithBaseURLs returns a copy of the registry with the given providers
// pointed at different base URLs. Unknown ids are ignored.
func (r *Registry) WithBaseURLs(overrides map[string]string) *Registry {
	m := make(map[string]ProviderDescriptor, len(r.providers))
	for id, d := range r.providers {
		if base, ok := overrides[id]; ok && base != "" {
			d.BaseURL = base
		}
		m[id] = d
	}
	return &Registry{providers: m}
}

// IDs returns all registered provider ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

const anthropicVersion = "2023-06-01"

// DefaultRegistry returns the built-in provider set. Environment variables
// are read here, once, so descriptors stay immutable afterwards:
// OLLAMA_BASE_URL overrides the local endpoint, and the OpenRouter advisory
// headers come from OPENROUTER_HTTP_REFERER / OPENROUTER_X_TITLE.
func DefaultRegistry() *Registry {
	ollamaBase := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBase == "" {
		ollamaBase = "http://localhost:11434/v1"
	}

	return NewRegistry(
		ProviderDescriptor{
			ID:      "openai",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.openai.com/v1",
			KeyEnv:  "OPENAI_API_KEY",
		},
		ProviderDescriptor{
			ID:      "groq",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.groq.com/openai/v1",
			KeyEnv:  "GROQ_API_KEY",
		},
		ProviderDescriptor{
			ID:      "together",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.together.xyz/v1",
			KeyEnv:  "TOGETHER_API_KEY",
		},
		ProviderDescriptor{
			ID:      "deepinfra",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.deepinfra.com/v1/openai",
			KeyEnv:  "DEEPINFRA_API_KEY",
		},
		ProviderDescriptor{
			ID:      "openrouter",
			Family:  FamilyOpenAI,
			BaseURL: "https://openrouter.ai/api/v1",
			KeyEnv:  "OPENROUTER_API_KEY",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": os.Getenv("OPENROUTER_HTTP_REFERER"),
				"X-Title":      os.Getenv("OPENROUTER_X_TITLE"),
			},
		},
		ProviderDescriptor{
			ID:      "xai",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.x.ai/v1",
			KeyEnv:  "XAI_API_KEY",
		},
		ProviderDescriptor{
			ID:      "mistral",
			Family:  FamilyOpenAI,
			BaseURL: "https://api.mistral.ai/v1",
			KeyEnv:  "MISTRAL_API_KEY",
		},
		ProviderDescriptor{
			ID:      "ollama",
			Family:  FamilyOpenAI,
			BaseURL: ollamaBase,
		},
		ProviderDescriptor{
			ID:               "anthropic",
			Family:           FamilyAnthropic,
			BaseURL:          "https://api.anthropic.com/v1",
			KeyEnv:           "ANTHROPIC_API_KEY",
			AnthropicVersion: anthropicVersion,
		},
		ProviderDescriptor{
			ID:      "gemini",
			Family:  FamilyGemini,
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			KeyEnv:  "GEMINI_API_KEY",
		},
	)
}
