package chatgpttest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestServer_ReplyAndRecord(t *testing.T) {
	srv := NewServer(WithResponder(Reply("Hi", " there")))
	defer srv.Close()

	resp, body := post(t, srv.URL(), `{"model":"gpt-4","messages":[{"role":"user","content":"Hello you"}],"user":"u"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var c Completion
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(c.ID, "chatcmpl-") {
		t.Errorf("id = %q", c.ID)
	}
	if c.Model != "gpt-4" || len(c.Choices) != 2 {
		t.Errorf("unexpected completion %+v", c)
	}
	if c.Usage.PromptTokens != 2 || c.Usage.CompletionTokens != 2 || c.Usage.TotalTokens != 4 {
		t.Errorf("usage = %+v", c.Usage)
	}

	rec, ok := srv.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	req, err := rec.Decode()
	if err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if req.User != "u" || req.MaxTokens != nil {
		t.Errorf("recorded request = %+v", req)
	}
}

func TestServer_Echo(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	_, body := post(t, srv.URL(), `{"model":"m","messages":[{"role":"user","content":"a"},{"role":"user","content":"ping"}]}`)
	var c Completion
	_ = json.Unmarshal(body, &c)
	if len(c.Choices) != 1 || c.Choices[0].Message.Content != "ping" {
		t.Errorf("echo = %+v", c.Choices)
	}

	resp, _ := post(t, srv.URL(), `{"model":"m","messages":[]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_StatusAndSetResponder(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	srv.SetResponder(Status(http.StatusUnauthorized, `{"error":"invalid key"}`))
	resp, body := post(t, srv.URL(), `{}`)
	if resp.StatusCode != http.StatusUnauthorized || string(body) != `{"error":"invalid key"}` {
		t.Errorf("got %d %s", resp.StatusCode, body)
	}

	srv.SetResponder(Raw("not json"))
	resp, body = post(t, srv.URL(), `{}`)
	if resp.StatusCode != http.StatusOK || string(body) != "not json" {
		t.Errorf("got %d %s", resp.StatusCode, body)
	}

	if n := len(srv.Requests()); n != 2 {
		t.Errorf("recorded %d requests, want 2", n)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	resp, _ := post(t, srv.BaseURL()+"/v1/other", `{}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if _, ok := srv.LastRequest(); ok {
		t.Error("unknown routes should not be recorded")
	}
}

func TestRecordedRequest_Fields(t *testing.T) {
	rec := RecordedRequest{Body: []byte(`{"model":"m","max_tokens":5}`)}
	fields, err := rec.Fields()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["max_tokens"] != float64(5) {
		t.Errorf("max_tokens = %v", fields["max_tokens"])
	}
}
