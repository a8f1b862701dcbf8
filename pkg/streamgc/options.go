package streamgc

import (
	"log/slog"

	"github.com/randalmurphal/streamgc/pkg/streamgc/observability"
)

// options holds shared configuration for the registry, pruner, and
// recovery engine.
type options struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	hooks   Hooks
}

// defaultOptions returns the default configuration: no logging, no-op
// metrics and tracing, no hooks.
func defaultOptions() options {
	return options{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Registry, Pruner, or Recovery.
type Option func(*options)

// WithLogger attaches a structured logger. A nil logger disables
// logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics attaches a metrics recorder.
// Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSpans attaches a span manager for tracing.
// Default: observability.NoopSpanManager{}.
func WithSpans(s observability.SpanManager) Option {
	return func(o *options) {
		if s != nil {
			o.spans = s
		}
	}
}

// WithHooks attaches lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// Hooks are optional lifecycle callbacks. Nil fields are skipped.
// Callbacks run synchronously on the coordinator's goroutine and should
// return quickly.
type Hooks struct {
	// OnPruned is called after an artifact is deleted from storage.
	OnPruned func(t Time, ref string)

	// OnPruneFailed is called when a deletion fails and the entry is
	// retained for retry.
	OnPruneFailed func(t Time, ref string, err error)

	// OnRestored is called after an artifact is materialized during
	// restore.
	OnRestored func(t Time, ref string)
}
