package chatgpt

import (
	"errors"
	"fmt"

	"github.com/kbukum/gochat/httpclient"
)

// CodeServerHadAnError is the code reported when no HTTP status is available.
const CodeServerHadAnError = 500

const msgRequestFailed = "Request failed"

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindTransport means no response was received (refused, DNS, timeout).
	KindTransport ErrorKind = iota + 1
	// KindService means the service answered with a non-2xx status.
	KindService
	// KindServerError means only a cause message is available, such as a
	// success body that could not be decoded. It is transport-class:
	// IsTransport reports true for it.
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	case KindServerError:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every failed completion call.
type Error struct {
	Kind ErrorKind
	// Code is the HTTP status for service errors, CodeServerHadAnError otherwise.
	Code int
	// Message is the response body for service errors, the cause message otherwise.
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("chatgpt: %s error (code %d): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newTransportError(err error) *Error {
	msg := err.Error()
	var he *httpclient.Error
	if errors.As(err, &he) {
		msg = he.Message
	}
	return &Error{Kind: KindTransport, Code: CodeServerHadAnError, Message: msg, Err: err}
}

// newServiceError keeps the raw body as the message; an absent or empty
// body becomes "Request failed".
func newServiceError(statusCode int, body []byte, cause error) *Error {
	msg := string(body)
	if len(body) == 0 {
		msg = msgRequestFailed
	}
	return &Error{Kind: KindService, Code: statusCode, Message: msg, Err: cause}
}

func newServerError(err error) *Error {
	return &Error{Kind: KindServerError, Code: CodeServerHadAnError, Message: err.Error(), Err: err}
}

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsTransport reports whether err is a transport-class failure: no response
// was received, or a success body could not be decoded.
func IsTransport(err error) bool {
	return hasKind(err, KindTransport) || hasKind(err, KindServerError)
}

// IsService reports whether err carries a non-2xx service response.
func IsService(err error) bool { return hasKind(err, KindService) }

// IsServerError reports whether err is a message-only server error.
func IsServerError(err error) bool { return hasKind(err, KindServerError) }

// StatusCode returns the code of a *Error, or 0 if err is not one.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsAuth reports a 401 or 403 response.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsRateLimit reports a 429 response.
func IsRateLimit(err error) bool { return httpclient.IsRateLimit(err) }

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool { return httpclient.IsNotFound(err) }

// IsTimeout reports a call that timed out before a response arrived.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }
