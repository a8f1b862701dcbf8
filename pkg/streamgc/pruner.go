package streamgc

import (
	"context"
	"log/slog"
	"sort"
	"time"

	gcerrors "github.com/randalmurphal/streamgc/pkg/streamgc/errors"
	"github.com/randalmurphal/streamgc/pkg/streamgc/observability"
	"github.com/randalmurphal/streamgc/pkg/streamgc/storage"
)

// Pruner deletes artifacts made obsolete by a finalized checkpoint.
//
// It resolves storage through a Resolver and caches the handle across
// passes. Any deletion failure invalidates the cache so the next attempt
// re-resolves it; a stale or expired connection handle is a common root
// cause of delete failures.
type Pruner struct {
	reg      *Registry
	resolver storage.Resolver
	store    storage.Store // cached handle, nil means unresolved

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	hooks   Hooks
}

// PruneStats summarizes one Cleanup pass.
type PruneStats struct {
	// Deleted is the number of artifacts removed from storage and
	// forgotten by the registry.
	Deleted int

	// Failed is the number of deletions that errored. Their entries
	// stay in the historical index for a later pass.
	Failed int
}

// NewPruner creates a pruner over the given registry and storage.
func NewPruner(reg *Registry, resolver storage.Resolver, opts ...Option) *Pruner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pruner{
		reg:      reg,
		resolver: resolver,
		logger:   o.logger,
		metrics:  o.metrics,
		spans:    o.spans,
		hooks:    o.hooks,
	}
}

// Cleanup prunes the artifacts made obsolete by the checkpoint at event.
//
// The caller must only invoke this after the overall pipeline checkpoint
// for event has been durably written; calling it earlier risks deleting
// artifacts still needed for recovery. That precondition is the
// caller's, not checked here.
//
// Cleanup consumes the watermark recorded by Update for event. If none
// is pending (never recorded, or already consumed), the pass is a no-op.
// Every history entry strictly older than the watermark is deleted from
// storage recursively; per-artifact failures are logged, retained for
// retry at the next cleanup opportunity, and never escape this method.
func (p *Pruner) Cleanup(ctx context.Context, event Time) PruneStats {
	var stats PruneStats

	watermark, ok := p.reg.takeWatermark(event)
	if !ok {
		observability.LogCleanupSkip(p.logger, event.Milliseconds())
		return stats
	}

	ctx, span := p.spans.StartCleanupSpan(ctx, event.Milliseconds())
	done := observability.TimedOperation()

	stale := p.reg.staleBefore(watermark)
	observability.LogCleanupStart(p.logger, event.Milliseconds(), watermark.Milliseconds(), len(stale))

	// Oldest first, so a pass interrupted by failures still makes
	// forward progress from the tail of the history.
	times := make([]Time, 0, len(stale))
	for t := range stale {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	for _, t := range times {
		ref := stale[t]
		if err := p.deleteArtifact(ctx, ref); err != nil {
			stats.Failed++
			delErr := &gcerrors.DeletionError{Ref: ref, Err: err}
			observability.LogDeleteFailed(p.logger, t.Milliseconds(), ref, delErr)
			if p.hooks.OnPruneFailed != nil {
				p.hooks.OnPruneFailed(t, ref, delErr)
			}
			continue
		}
		p.reg.forgetArtifact(t)
		stats.Deleted++
		observability.LogArtifactDeleted(p.logger, t.Milliseconds(), ref)
		if p.hooks.OnPruned != nil {
			p.hooks.OnPruned(t, ref)
		}
	}

	elapsed := time.Duration(done() * float64(time.Millisecond))
	p.metrics.RecordPrune(ctx, stats.Deleted, stats.Failed, elapsed)
	p.spans.EndSpanWithError(span, nil)
	return stats
}

// deleteArtifact removes one artifact through the cached store handle,
// resolving it first if needed. Any error drops the cache.
func (p *Pruner) deleteArtifact(ctx context.Context, ref string) error {
	if p.store == nil {
		store, err := p.resolver.Resolve(ctx)
		if err != nil {
			return err
		}
		p.store = store
	}
	if err := p.store.Delete(ctx, ref, true); err != nil {
		p.store = nil
		return err
	}
	return nil
}
