// Package observability provides the OpenTelemetry tracing and metrics used
// by the chat client.
//
// Providers are installed globally by InitTracer and InitMeter; the client
// falls back to the global providers when none are supplied in its config.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("gochat"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("gochat"))
//	defer mp.Shutdown(ctx)
//
// Each completion call is tracked by an OperationContext:
//
//	oc := observability.NewOperationContext(tracer, metrics, "gpt-4", "user", requestID)
//	ctx, span := oc.Start(ctx, observability.SpanAskOriginal)
//	defer oc.End(ctx, span, http.StatusOK, "", nil)
package observability
