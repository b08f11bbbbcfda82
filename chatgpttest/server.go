package chatgpttest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gochat/logger"
)

// CompletionsPath is the route the fake service answers on.
const CompletionsPath = "/v1/chat/completions"

func init() {
	gin.SetMode(gin.TestMode)
}

// Server is a fake completion service backed by httptest.Server.
type Server struct {
	ts     *httptest.Server
	engine *gin.Engine
	log    *logger.Logger

	mu        sync.Mutex
	responder Responder
	requests  []RecordedRequest
}

// Option configures a Server.
type Option func(*Server)

// WithResponder sets the initial responder. The default is Echo.
func WithResponder(r Responder) Option {
	return func(s *Server) { s.responder = r }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer starts a fake service on a loopback port.
func NewServer(opts ...Option) *Server {
	s := &Server{
		engine:    gin.New(),
		log:       logger.Nop(),
		responder: Echo(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.POST(CompletionsPath, s.handle)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown route " + c.Request.URL.Path})
	})

	s.ts = httptest.NewServer(s.engine)
	return s
}

// URL returns the full chat-completion URL of the server.
func (s *Server) URL() string { return s.ts.URL + CompletionsPath }

// BaseURL returns the server root, e.g. "http://127.0.0.1:PORT".
func (s *Server) BaseURL() string { return s.ts.URL }

// Close shuts the server down.
func (s *Server) Close() { s.ts.Close() }

// SetResponder replaces the responder for subsequent requests.
func (s *Server) SetResponder(r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = r
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request; ok is false if there is none.
func (s *Server) LastRequest() (req RecordedRequest, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := RecordedRequest{
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		RequestURI: c.Request.RequestURI,
		Host:       c.Request.Host,
		Header:     c.Request.Header.Clone(),
		Body:       body,
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	responder := s.responder
	s.mu.Unlock()

	s.log.Debug("completion request", logger.Fields(
		"path", rec.Path,
		"request_uri", rec.RequestURI,
		"bytes", len(body),
	))
	responder(c, rec)
}
