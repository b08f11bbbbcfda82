package httpclient

import (
	"net/http"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("POST", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestHeaderAuth_ReplacesBearer(t *testing.T) {
	auth := HeaderAuth(map[string]string{"X-Custom": "v", "api-key": "k"})
	req, _ := http.NewRequest("POST", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-Custom"); got != "v" {
		t.Errorf("X-Custom = %q, want %q", got, "v")
	}
	if got := req.Header.Get("Api-Key"); got != "k" {
		t.Errorf("Api-Key = %q, want %q", got, "k")
	}
	if _, ok := req.Header["Authorization"]; ok {
		t.Error("header auth must not set Authorization")
	}
}

func TestHeaderAuth_Empty(t *testing.T) {
	auth := HeaderAuth(map[string]string{})
	req, _ := http.NewRequest("POST", "http://example.com", nil)
	auth.apply(req)
	if len(req.Header) != 0 {
		t.Errorf("expected no headers, got %v", req.Header)
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not panic
}

func TestAuthNone(t *testing.T) {
	auth := &AuthConfig{Type: AuthNone}
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}

func TestAuthType_String(t *testing.T) {
	tests := map[AuthType]string{
		AuthNone:     "none",
		AuthBearer:   "bearer",
		AuthHeaders:  "headers",
		AuthType(42): "none",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("AuthType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
