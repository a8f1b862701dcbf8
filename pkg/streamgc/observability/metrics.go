package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records retention and recovery metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordUpdate records a checkpoint update with its artifact count.
	RecordUpdate(ctx context.Context, artifacts int)

	// RecordPrune records a completed prune pass.
	RecordPrune(ctx context.Context, deleted, failed int, duration time.Duration)

	// RecordRestore records a restore attempt.
	RecordRestore(ctx context.Context, artifacts int, duration time.Duration, err error)

	// RecordSnapshotSize records the serialized snapshot size in bytes.
	RecordSnapshotSize(ctx context.Context, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	updates        metric.Int64Counter
	artifactsSeen  metric.Int64Counter
	pruneDeleted   metric.Int64Counter
	pruneFailed    metric.Int64Counter
	pruneLatency   metric.Float64Histogram
	restoreLatency metric.Float64Histogram
	snapshotSize   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("streamgc")

	updates, err := meter.Int64Counter("streamgc.updates",
		metric.WithDescription("Number of checkpoint update calls"),
	)
	if err != nil {
		return nil, err
	}

	artifactsSeen, err := meter.Int64Counter("streamgc.artifacts.recorded",
		metric.WithDescription("Number of artifact references recorded via update"),
	)
	if err != nil {
		return nil, err
	}

	pruneDeleted, err := meter.Int64Counter("streamgc.prune.deleted",
		metric.WithDescription("Number of artifacts deleted by prune passes"),
	)
	if err != nil {
		return nil, err
	}

	pruneFailed, err := meter.Int64Counter("streamgc.prune.failed",
		metric.WithDescription("Number of artifact deletions that failed and were kept for retry"),
	)
	if err != nil {
		return nil, err
	}

	pruneLatency, err := meter.Float64Histogram("streamgc.prune.latency_ms",
		metric.WithDescription("Prune pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	restoreLatency, err := meter.Float64Histogram("streamgc.restore.latency_ms",
		metric.WithDescription("Restore latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	snapshotSize, err := meter.Int64Histogram("streamgc.snapshot.size_bytes",
		metric.WithDescription("Serialized snapshot size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		updates:        updates,
		artifactsSeen:  artifactsSeen,
		pruneDeleted:   pruneDeleted,
		pruneFailed:    pruneFailed,
		pruneLatency:   pruneLatency,
		restoreLatency: restoreLatency,
		snapshotSize:   snapshotSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordUpdate records a checkpoint update.
func (m *otelMetrics) RecordUpdate(ctx context.Context, artifacts int) {
	m.updates.Add(ctx, 1)
	m.artifactsSeen.Add(ctx, int64(artifacts))
}

// RecordPrune records a completed prune pass.
func (m *otelMetrics) RecordPrune(ctx context.Context, deleted, failed int, duration time.Duration) {
	m.pruneDeleted.Add(ctx, int64(deleted))
	m.pruneFailed.Add(ctx, int64(failed))
	m.pruneLatency.Record(ctx, float64(duration.Milliseconds()))
}

// RecordRestore records a restore attempt.
func (m *otelMetrics) RecordRestore(ctx context.Context, artifacts int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int("artifacts", artifacts),
	}
	m.restoreLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordSnapshotSize records the serialized snapshot size.
func (m *otelMetrics) RecordSnapshotSize(ctx context.Context, sizeBytes int64) {
	m.snapshotSize.Record(ctx, sizeBytes)
}
