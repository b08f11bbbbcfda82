package chatgpt

import (
	"encoding/json"
	"fmt"
)

// ChatCompletionRequest is the JSON body posted to the completion endpoint.
type ChatCompletionRequest struct {
	Model    Model     `json:"model" validate:"required"`
	Messages []Message `json:"messages" validate:"required,min=1,dive"`
	User     string    `json:"user"`
	// MaxTokens is nil when no cap should be sent.
	MaxTokens *int `json:"max_tokens,omitempty"`
}

// NewChatCompletionRequest builds a request body. A non-positive maxTokens
// leaves the cap unset so the key is omitted from the payload.
func NewChatCompletionRequest(model Model, user string, messages []Message, maxTokens int) ChatCompletionRequest {
	req := ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		User:     user,
	}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}
	return req
}

func encodeRequest(req ChatCompletionRequest) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("chatgpt: encode request: %w", err)
	}
	return data, nil
}
