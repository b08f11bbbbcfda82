package chatgpttest

import (
	"encoding/json"
	"net/http"
)

// Message is the wire form of a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the decoded request body.
type CompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	User      string    `json:"user"`
	MaxTokens *int      `json:"max_tokens,omitempty"`
}

// Completion is the reply body produced by Reply.
type Completion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one generated alternative.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RecordedRequest is one request as the server saw it.
type RecordedRequest struct {
	Method     string
	Path       string
	RequestURI string
	Host       string
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body as a completion request.
func (r RecordedRequest) Decode() (CompletionRequest, error) {
	var req CompletionRequest
	err := json.Unmarshal(r.Body, &req)
	return req, err
}

// Fields unmarshals the body into a generic map, for checking which keys
// were sent.
func (r RecordedRequest) Fields() (map[string]any, error) {
	var m map[string]any
	err := json.Unmarshal(r.Body, &m)
	return m, err
}
