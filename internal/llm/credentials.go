package llm

import (
	"net/url"
	"os"
)

// Credential is a resolved API key. Key is empty for providers that need no
// authentication.
type Credential struct {
	Key string
}

// ResolveCredential reads the provider's API key from the environment.
// A provider with no KeyEnv resolves to an empty credential; a provider whose
// KeyEnv is unset or empty is a configuration error.
func ResolveCredential(desc ProviderDescriptor) (Credential, error) {
	if desc.KeyEnv == "" {
		return Credential{}, nil
	}
	key := os.Getenv(desc.KeyEnv)
	if key == "" {
		return Credential{}, &MissingCredentialError{Provider: desc.ID, EnvVar: desc.KeyEnv}
	}
	return Credential{Key: key}, nil
}

// BuildHeaders produces the request headers for a provider. Each family uses
// exactly one authentication mechanism:
//   - OpenAI-compatible: Authorization bearer token (omitted when no key)
//   - Anthropic: x-api-key plus the anthropic-version header
//   - Gemini: none; the key travels as a query parameter (see AuthorizeURL)
//
// Headers with empty values are never emitted. Content-Type is added by the
// caller on POST requests only.
func BuildHeaders(desc ProviderDescriptor, cred Credential) map[string]string {
	h := map[string]string{
		"Accept": "application/json",
	}

	switch desc.Family {
	case FamilyOpenAI:
		if cred.Key != "" {
			h["Authorization"] = "Bearer " + cred.Key
		}
	case FamilyAnthropic:
		if cred.Key != "" {
			h["x-api-key"] = cred.Key
		}
		if desc.AnthropicVersion != "" {
			h["anthropic-version"] = desc.AnthropicVersion
		}
	case FamilyGemini:
		// Credential goes on the URL, not in headers.
	}

	for k, v := range desc.ExtraHeaders {
		if v != "" {
			h[k] = v
		}
	}

	return h
}

// AuthorizeURL appends the credential as a "key" query parameter for
// providers that authenticate on the URL (Gemini). Other families get the
// URL back unchanged.
func AuthorizeURL(rawURL string, desc ProviderDescriptor, cred Credential) string {
	if desc.Family != FamilyGemini || cred.Key == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("key", cred.Key)
	u.RawQuery = q.Encode()
	return u.String()
}
