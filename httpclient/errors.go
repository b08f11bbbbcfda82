package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode is the failure class of a request.
type ErrorCode int

const (
	// ErrCodeTimeout: the deadline passed before a response arrived.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection: no response, e.g. refused, DNS or proxy failure.
	ErrCodeConnection
	// ErrCodeAuth: 401 or 403, usually a bad API key.
	ErrCodeAuth
	// ErrCodeNotFound: 404, usually a wrong API host path.
	ErrCodeNotFound
	// ErrCodeRateLimit: 429. Callers decide whether to wait.
	ErrCodeRateLimit
	// ErrCodeValidation: any other 4xx, or a request that could not be built.
	ErrCodeValidation
	// ErrCodeServer: 5xx and every remaining non-2xx status.
	ErrCodeServer
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

// String returns the snake_case name used in logs.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error describes a failed request. StatusCode and Body are set only when the
// server answered.
type Error struct {
	StatusCode int
	Code       ErrorCode
	// Message is the cause text for transport failures and "HTTP <status>"
	// otherwise.
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError wraps a transport error that hit a deadline.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError wraps a transport error that produced no response.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewValidationError creates an error for a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode maps a response status onto an *Error carrying body.
// It returns nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	code := ErrCodeServer
	switch {
	case statusCode == 401 || statusCode == 403:
		code = ErrCodeAuth
	case statusCode == 404:
		code = ErrCodeNotFound
	case statusCode == 429:
		code = ErrCodeRateLimit
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeValidation
	}

	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout reports whether err is a deadline failure.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsAuth reports whether the server rejected the credentials.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRateLimit reports a 429.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsServerError reports a 5xx or unclassified status.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsTransport reports whether no response was obtained (timeout or connection).
func IsTransport(err error) bool { return IsTimeout(err) || IsConnection(err) }
