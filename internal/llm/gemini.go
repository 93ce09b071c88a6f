package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Gemini generateContent API: POST {base}/models/{model}:generateContent with
// the key as a query parameter, reply in candidates[0].content.parts[0].text.
// Model ids may arrive with a "models/" prefix (that is how the listing
// endpoint names them); the prefix is stripped before building the path.

var geminiProtocol = protocol{
	preferences: []string{"gemini-2", "gemini-1.5", "pro", "flash"},
	chatURL: func(base, model string) string {
		return fmt.Sprintf("%s/models/%s:generateContent", base, geminiModelID(model))
	},
	buildBody:    buildGeminiBody,
	replyText:    parseGeminiReply,
	modelsURL:    func(base string) string { return base + "/models" },
	parseCatalog: parseGeminiCatalog,
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// geminiModelID strips the "models/" catalog prefix, if present.
func geminiModelID(model string) string {
	return strings.TrimPrefix(model, "models/")
}

func buildGeminiBody(model, system, user string, maxTokens int) any {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: user}},
		}},
		GenerationConfig: geminiGenConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     0,
		},
	}
	if system != "" {
		req.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: system}},
		}
	}
	return req
}

func parseGeminiReply(body []byte) (string, bool) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	return text, text != ""
}

func parseGeminiCatalog(body []byte) ([]string, error) {
	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range resp.Models {
		if m.Name != "" {
			ids = append(ids, geminiModelID(m.Name))
		}
	}
	return ids, nil
}
