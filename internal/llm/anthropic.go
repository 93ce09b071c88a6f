package llm

import (
	"encoding/json"
	"strings"
)

// Anthropic messages API: POST {base}/messages with x-api-key and
// anthropic-version headers, reply in content[0].text. The system prompt
// travels in a dedicated top-level field rather than as a message.

var anthropicProtocol = protocol{
	preferences: []string{"sonnet", "opus", "haiku", "claude"},
	chatURL: func(base, model string) string {
		return base + "/messages"
	},
	buildBody:    buildAnthropicBody,
	replyText:    parseAnthropicReply,
	modelsURL:    func(base string) string { return base + "/models" },
	parseCatalog: parseDataCatalog,
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func buildAnthropicBody(model, system, user string, maxTokens int) any {
	return anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      system,
		Messages:    []anthropicMessage{{Role: "user", Content: user}},
		Temperature: 0,
	}
}

func parseAnthropicReply(body []byte) (string, bool) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if len(resp.Content) == 0 {
		return "", false
	}
	text := strings.TrimSpace(resp.Content[0].Text)
	return text, text != ""
}
