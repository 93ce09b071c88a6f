package llm

import (
	"encoding/json"
	"strings"
)

// OpenAI-compatible wire shape: POST {base}/chat/completions, reply in
// choices[0].message.content. This path serves OpenAI itself plus every
// compatible vendor in the registry (Groq, Together, DeepInfra, OpenRouter,
// xAI, Mistral, Ollama).

var openAIProtocol = protocol{
	preferences: []string{"gpt", "llama", "qwen", "deepseek", "mistral", "mixtral", "instruct", "sonar", "grok"},
	chatURL: func(base, model string) string {
		return base + "/chat/completions"
	},
	buildBody:    buildOpenAIBody,
	replyText:    parseOpenAIReply,
	modelsURL:    func(base string) string { return base + "/models" },
	parseCatalog: parseDataCatalog,
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content any `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func buildOpenAIBody(model, system, user string, maxTokens int) any {
	var msgs []openAIMessage
	if system != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, openAIMessage{Role: "user", Content: user})

	return openAIRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: 0,
		MaxTokens:   maxTokens,
	}
}

func parseOpenAIReply(body []byte) (string, bool) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}
	text, ok := resp.Choices[0].Message.Content.(string)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// parseDataCatalog handles the {"data":[{"id":...}]} listing shape shared by
// the OpenAI-compatible and Anthropic families.
func parseDataCatalog(body []byte) ([]string, error) {
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range resp.Data {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}
