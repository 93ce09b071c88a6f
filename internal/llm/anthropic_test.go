package llm

import (
	"encoding/json"
	"testing"
)

func TestBuildAnthropicBody(t *testing.T) {
	raw, err := json.Marshal(buildAnthropicBody("claude-sonnet-4", "be terse", "hello", 1024))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// System prompt rides in a top-level field, not as a message.
	if _, ok := keys["system"]; !ok {
		t.Error("system field missing")
	}
	if _, ok := keys["max_tokens"]; !ok {
		t.Error("max_tokens field missing")
	}

	var req anthropicRequest
	json.Unmarshal(raw, &req)
	if req.System != "be terse" {
		t.Errorf("system = %q", req.System)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("expected single user message, got %+v", req.Messages)
	}
	if req.MaxTokens != 1024 {
		t.Errorf("max_tokens = %d", req.MaxTokens)
	}
}

func TestBuildAnthropicBodyNoSystem(t *testing.T) {
	raw, _ := json.Marshal(buildAnthropicBody("m", "", "hi", 100))
	var keys map[string]json.RawMessage
	json.Unmarshal(raw, &keys)
	if _, ok := keys["system"]; ok {
		t.Error("empty system prompt should be omitted from the wire")
	}
}

func TestParseAnthropicReply(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{
			name:   "well formed",
			body:   `{"content":[{"type":"text","text":"fix: handle nil map\n"}]}`,
			want:   "fix: handle nil map",
			wantOK: true,
		},
		{
			name:   "empty content",
			body:   `{"content":[]}`,
			wantOK: false,
		},
		{
			name:   "missing content key",
			body:   `{"id":"msg_123"}`,
			wantOK: false,
		},
		{
			name:   "not json",
			body:   `oops`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAnthropicReply([]byte(tt.body))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnthropicChatURL(t *testing.T) {
	got := anthropicProtocol.chatURL("https://api.anthropic.com/v1", "claude-sonnet-4")
	if got != "https://api.anthropic.com/v1/messages" {
		t.Errorf("unexpected chat url: %s", got)
	}
}
