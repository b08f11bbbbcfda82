package chatgpt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kbukum/gochat/validation"
)

func TestNewChatCompletionRequest_MaxTokens(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens int
		want      *int
	}{
		{"positive is kept", 64, intPtr(64)},
		{"zero is unset", 0, nil},
		{"negative is unset", -5, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := NewChatCompletionRequest(GPT4, "u", []Message{UserMessage("hi")}, tc.maxTokens)
			switch {
			case tc.want == nil && req.MaxTokens != nil:
				t.Errorf("MaxTokens = %d, want unset", *req.MaxTokens)
			case tc.want != nil && (req.MaxTokens == nil || *req.MaxTokens != *tc.want):
				t.Errorf("MaxTokens = %v, want %d", req.MaxTokens, *tc.want)
			}
		})
	}
}

func TestEncodeRequest_OmitsUnsetMaxTokens(t *testing.T) {
	data, err := encodeRequest(NewChatCompletionRequest(GPT35Turbo, "user", []Message{UserMessage("hi")}, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "max_tokens") {
		t.Errorf("payload should not carry max_tokens: %s", data)
	}

	data, _ = encodeRequest(NewChatCompletionRequest(GPT35Turbo, "user", []Message{UserMessage("hi")}, 10))
	if !strings.Contains(string(data), `"max_tokens":10`) {
		t.Errorf("payload should carry max_tokens: %s", data)
	}
}

func TestEncodeRequest_WireShape(t *testing.T) {
	msgs := []Message{SystemMessage("be brief"), UserMessage("hi"), AssistantMessage("hello")}
	data, err := encodeRequest(NewChatCompletionRequest(GPT4, "alice", msgs, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["model"] != "gpt-4" || got["user"] != "alice" || got["max_tokens"] != float64(3) {
		t.Errorf("unexpected payload %v", got)
	}
	messages, _ := got["messages"].([]any)
	if len(messages) != 3 {
		t.Fatalf("messages = %v", got["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "be brief" {
		t.Errorf("first message = %v", first)
	}
}

func TestEncodeRequest_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens int
		want      *int
	}{
		{"with cap", 5, intPtr(5)},
		{"without cap", 0, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewChatCompletionRequest("m", "u", []Message{UserMessage("hi")}, tc.maxTokens)
			data, err := encodeRequest(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var out ChatCompletionRequest
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Model != "m" || out.User != "u" {
				t.Errorf("model/user = %q/%q", out.Model, out.User)
			}
			if len(out.Messages) != 1 || out.Messages[0] != (Message{Role: RoleUser, Content: "hi"}) {
				t.Errorf("messages = %+v", out.Messages)
			}
			switch {
			case tc.want == nil && out.MaxTokens != nil:
				t.Errorf("MaxTokens = %d, want unset", *out.MaxTokens)
			case tc.want != nil && (out.MaxTokens == nil || *out.MaxTokens != *tc.want):
				t.Errorf("MaxTokens = %v, want %d", out.MaxTokens, *tc.want)
			}
		})
	}
}

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   ChatCompletionRequest
		field string
	}{
		{"empty model", NewChatCompletionRequest("", "u", []Message{UserMessage("x")}, 0), "model"},
		{"no messages", NewChatCompletionRequest(GPT4, "u", nil, 0), "messages"},
		{"empty messages", NewChatCompletionRequest(GPT4, "u", []Message{}, 0), "messages"},
		{"bad role", NewChatCompletionRequest(GPT4, "u", []Message{{Role: "tool", Content: "x"}}, 0), "messages[0].role"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Validate(tc.req)
			var verr *validation.Error
			if !asValidation(err, &verr) {
				t.Fatalf("expected *validation.Error, got %v", err)
			}
			if !verr.Has(tc.field) {
				t.Errorf("expected error on %q, got %v", tc.field, verr)
			}
		})
	}

	if err := validation.Validate(NewChatCompletionRequest("my-custom-model", "", []Message{UserMessage("")}, 0)); err != nil {
		t.Errorf("unknown model names and empty user should pass through, got %v", err)
	}
}

func TestModels(t *testing.T) {
	models := Models()
	if len(models) != 6 {
		t.Fatalf("expected 6 known models, got %d", len(models))
	}
	if DefaultModel.Name() != "gpt-3.5-turbo" {
		t.Errorf("DefaultModel = %q", DefaultModel.Name())
	}
	if GPT432K0314.String() != "gpt-4-32k-0314" {
		t.Errorf("GPT432K0314 = %q", GPT432K0314)
	}
}

func intPtr(v int) *int { return &v }
