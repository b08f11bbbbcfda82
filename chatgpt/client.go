package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gochat/httpclient"
	"github.com/kbukum/gochat/logger"
	"github.com/kbukum/gochat/observability"
	"github.com/kbukum/gochat/validation"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Client talks to a chat-completion endpoint. It is safe for concurrent use.
type Client struct {
	http    *httpclient.Client
	apiHost string
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.CompletionMetrics
}

// New creates a client from cfg. Exactly one transport is chosen here: the
// supplied HTTPClient, a proxied transport, or the default one.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(cfg.httpConfig())
	if err != nil {
		return nil, fmt.Errorf("chatgpt: create http client: %w", err)
	}

	metrics, err := observability.NewCompletionMetrics(observability.Meter(cfg.MeterProvider))
	if err != nil {
		return nil, fmt.Errorf("chatgpt: create metrics: %w", err)
	}

	return &Client{
		http:    hc,
		apiHost: cfg.APIHost,
		log:     cfg.Logger,
		tracer:  observability.Tracer(cfg.TracerProvider),
		metrics: metrics,
	}, nil
}

// AskOriginal sends one completion request and returns the decoded response
// unmodified. Failures are *Error values except for request validation
// (*validation.Error) and encoding failures.
func (c *Client) AskOriginal(ctx context.Context, model Model, user string, messages []Message, maxTokens int) (*ChatCompletionResponse, error) {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)
	log := c.log.WithContext(ctx)

	oc := observability.NewOperationContext(c.tracer, c.metrics, model.Name(), user, requestID)
	ctx, span := oc.Start(ctx, observability.SpanAskOriginal)

	resp, statusCode, err := c.complete(ctx, NewChatCompletionRequest(model, user, messages, maxTokens))
	if err != nil {
		kind := errorKind(err)
		oc.End(ctx, span, statusCode, kind, err)
		log.Error("request failed", logger.Fields(
			logger.FieldModel, model.Name(),
			logger.FieldStatus, statusCode,
			"kind", kind,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	oc.RecordUsage(ctx, span, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	oc.End(ctx, span, statusCode, "", nil)
	log.Debug("completion received", logger.Fields(
		logger.FieldModel, resp.Model,
		"choices", len(resp.Choices),
		"total_tokens", resp.Usage.TotalTokens,
		logger.FieldDuration, oc.Duration().Milliseconds(),
	))
	return resp, nil
}

// complete performs the exchange and returns the HTTP status seen (0 if none).
func (c *Client) complete(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, int, error) {
	if err := validation.Validate(req); err != nil {
		return nil, 0, err
	}
	body, err := encodeRequest(req)
	if err != nil {
		return nil, 0, err
	}

	httpResp, err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.apiHost,
		Headers: map[string]string{"Content-Type": contentTypeJSON},
		Body:    body,
	})
	if err != nil {
		if httpResp != nil {
			return nil, httpResp.StatusCode, newServiceError(httpResp.StatusCode, httpResp.Body, err)
		}
		return nil, 0, newTransportError(err)
	}

	resp, err := decodeResponse(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, newServerError(err)
	}
	return resp, httpResp.StatusCode, nil
}

func errorKind(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.String()
	}
	if validation.IsValidationError(err) {
		return "validation"
	}
	return "encode"
}
