package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordUpdate does nothing.
func (NoopMetrics) RecordUpdate(_ context.Context, _ int) {}

// RecordPrune does nothing.
func (NoopMetrics) RecordPrune(_ context.Context, _, _ int, _ time.Duration) {}

// RecordRestore does nothing.
func (NoopMetrics) RecordRestore(_ context.Context, _ int, _ time.Duration, _ error) {}

// RecordSnapshotSize does nothing.
func (NoopMetrics) RecordSnapshotSize(_ context.Context, _ int64) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartCleanupSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartCleanupSpan(ctx context.Context, _ int64) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartRestoreSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartRestoreSpan(ctx context.Context, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
