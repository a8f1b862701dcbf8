package streamgc

import (
	"context"
	"log/slog"
	"sort"
	"time"

	gcerrors "github.com/randalmurphal/streamgc/pkg/streamgc/errors"
	"github.com/randalmurphal/streamgc/pkg/streamgc/observability"
)

// Materializer re-reads an artifact during recovery and registers the
// result as the computation engine's known output for that time. It is
// supplied by the computation engine; typically it wraps a storage read
// plus whatever deserialization the engine's state needs.
type Materializer interface {
	Materialize(ctx context.Context, t Time, ref string) error
}

// MaterializerFunc adapts a function to the Materializer interface.
type MaterializerFunc func(ctx context.Context, t Time, ref string) error

// Materialize implements Materializer.
func (f MaterializerFunc) Materialize(ctx context.Context, t Time, ref string) error {
	return f(ctx, t, ref)
}

// Recovery rebuilds computed state from the artifacts referenced in the
// registry's current snapshot.
type Recovery struct {
	reg *Registry
	mat Materializer

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	hooks   Hooks
}

// NewRecovery creates a recovery engine over the given registry.
func NewRecovery(reg *Registry, mat Materializer, opts ...Option) *Recovery {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Recovery{
		reg:     reg,
		mat:     mat,
		logger:  o.logger,
		metrics: o.metrics,
		spans:   o.spans,
		hooks:   o.hooks,
	}
}

// Restore materializes every artifact in the current snapshot. It is
// called exactly once during startup, after the snapshot has been
// repopulated from a prior checkpoint and before any Update or Cleanup.
//
// Distinct events' artifacts carry no ordering dependency; iteration is
// oldest-first only to keep logs readable. The first materialization
// failure aborts the restore: a missing or unreadable artifact means
// recovery cannot proceed for that logical time, and the caller must
// fail the restart rather than continue with a gap.
func (rc *Recovery) Restore(ctx context.Context) error {
	snapshot := rc.reg.CurrentSnapshot()
	observability.LogRestoreStart(rc.logger, len(snapshot))

	ctx, span := rc.spans.StartRestoreSpan(ctx, len(snapshot))
	done := observability.TimedOperation()

	times := make([]Time, 0, len(snapshot))
	for t := range snapshot {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	for _, t := range times {
		ref := snapshot[t]
		if err := rc.mat.Materialize(ctx, t, ref); err != nil {
			matErr := &gcerrors.MaterializationError{
				Event: t.String(),
				Ref:   ref,
				Err:   err,
			}
			observability.LogRestoreError(rc.logger, t.Milliseconds(), ref, matErr)
			elapsed := time.Duration(done() * float64(time.Millisecond))
			rc.metrics.RecordRestore(ctx, len(snapshot), elapsed, matErr)
			rc.spans.EndSpanWithError(span, matErr)
			return matErr
		}
		observability.LogRestoreArtifact(rc.logger, t.Milliseconds(), ref)
		if rc.hooks.OnRestored != nil {
			rc.hooks.OnRestored(t, ref)
		}
	}

	elapsedMs := done()
	observability.LogRestoreComplete(rc.logger, len(snapshot), elapsedMs)
	rc.metrics.RecordRestore(ctx, len(snapshot), time.Duration(elapsedMs*float64(time.Millisecond)), nil)
	rc.spans.EndSpanWithError(span, nil)
	return nil
}
