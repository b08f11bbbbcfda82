package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthHeaders sends a fixed set of caller-supplied headers instead of a
	// bearer token. The two are never combined.
	AuthHeaders
)

// String returns the auth type name.
func (t AuthType) String() string {
	switch t {
	case AuthBearer:
		return "bearer"
	case AuthHeaders:
		return "headers"
	default:
		return "none"
	}
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Headers are sent verbatim (AuthHeaders).
	Headers map[string]string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// HeaderAuth creates an auth config that sends the given headers verbatim.
func HeaderAuth(headers map[string]string) *AuthConfig {
	return &AuthConfig{Type: AuthHeaders, Headers: headers}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthHeaders:
		for k, v := range a.Headers {
			req.Header.Set(k, v)
		}
	}
}
