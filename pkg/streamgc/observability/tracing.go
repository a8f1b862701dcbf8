package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the streamgc tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("streamgc")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCleanupSpan starts a span for a prune pass.
	// Returns the context with span and the span itself.
	StartCleanupSpan(ctx context.Context, eventMs int64) (context.Context, trace.Span)

	// StartRestoreSpan starts a span for a restore run.
	StartRestoreSpan(ctx context.Context, artifacts int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCleanupSpan starts a span for a prune pass.
func (m *otelSpanManager) StartCleanupSpan(ctx context.Context, eventMs int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "streamgc.cleanup",
		trace.WithAttributes(
			attribute.Int64("event_ms", eventMs),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRestoreSpan starts a span for a restore run.
func (m *otelSpanManager) StartRestoreSpan(ctx context.Context, artifacts int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "streamgc.restore",
		trace.WithAttributes(
			attribute.Int("artifacts", artifacts),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
