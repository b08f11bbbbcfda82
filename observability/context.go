package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext tracks the span and metrics of one completion call.
type OperationContext struct {
	Model     string
	User      string
	RequestID string
	StartTime time.Time
	Tracer    trace.Tracer
	Metrics   *CompletionMetrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
// If tracer is nil, the global tracer is used.
func NewOperationContext(tracer trace.Tracer, metrics *CompletionMetrics, model, user, requestID string) *OperationContext {
	if tracer == nil {
		tracer = Tracer(nil)
	}
	return &OperationContext{
		Model:     model,
		User:      user,
		RequestID: requestID,
		StartTime: time.Now(),
		Tracer:    tracer,
		Metrics:   metrics,
	}
}

// Start opens a client span named spanName and records the request start.
func (oc *OperationContext) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := oc.Tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrModel, oc.Model),
		attribute.String(AttrUser, oc.User),
		attribute.String(AttrRequestID, oc.RequestID),
	)

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestStart(ctx)
	}
	return ctx, span
}

// RecordUsage attaches token usage to the span and the token counters.
func (oc *OperationContext) RecordUsage(ctx context.Context, span trace.Span, prompt, completion, total int) {
	span.SetAttributes(
		attribute.Int(AttrPromptTokens, prompt),
		attribute.Int(AttrCompletionTokens, completion),
		attribute.Int(AttrTotalTokens, total),
	)
	if oc.Metrics != nil {
		oc.Metrics.RecordUsage(ctx, oc.Model, prompt, completion)
	}
}

// End ends the span and records request-end metrics. statusCode is the HTTP
// status of the response, or 0 when none was received. errKind labels the
// failure for the error counter and is ignored when err is nil.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, statusCode int, errKind string, err error) {
	duration := time.Since(oc.StartTime)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorKind, errKind))
	}
	if statusCode > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordRequestEnd(ctx, oc.Model, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, errKind, oc.Model)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
