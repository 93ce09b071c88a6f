package llm

// protocol bundles everything family-specific: the endpoints, the request
// builder, the response parser, and the model-selection preferences. Adding a
// fourth protocol family means adding one value here and a case in
// Family.protocol, nothing else.
type protocol struct {
	// preferences is the default ranked substring list for auto-selecting a
	// model from the catalog.
	preferences []string

	// chatURL builds the full chat endpoint for a model.
	chatURL func(base, model string) string

	// buildBody produces the wire request body for marshaling.
	buildBody func(model, system, user string, maxTokens int) any

	// replyText extracts the normalized reply from a 2xx response body.
	// It never fails: missing keys or wrong types yield ("", false).
	replyText func(body []byte) (string, bool)

	// modelsURL builds the model listing endpoint.
	modelsURL func(base string) string

	// parseCatalog extracts model ids from the listing response body.
	parseCatalog func(body []byte) ([]string, error)
}

func (f Family) protocol() protocol {
	switch f {
	case FamilyAnthropic:
		return anthropicProtocol
	case FamilyGemini:
		return geminiProtocol
	default:
		return openAIProtocol
	}
}
