package streamgc

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/streamgc/pkg/streamgc/observability"
)

// Snapshot maps logical times to artifact refs.
type Snapshot map[Time]string

// clone returns a copy of the snapshot.
func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for t, ref := range s {
		out[t] = ref
	}
	return out
}

// oldest returns the minimum key. The snapshot must be non-empty.
func (s Snapshot) oldest() Time {
	first := true
	var min Time
	for t := range s {
		if first || t.Before(min) {
			min = t
			first = false
		}
	}
	return min
}

// transientIndex is the registry's process-local bookkeeping. It is
// meaningful only in the process that has been continuously running the
// pipeline, so it is rebuilt empty after any checkpoint reload.
type transientIndex struct {
	// history accumulates every artifact ref ever seen via Update,
	// across all checkpoints. Superset of the current snapshot.
	history Snapshot

	// watermarks records, per checkpoint event, the oldest artifact
	// that checkpoint still depends on. Consumed exactly once by the
	// matching Cleanup call.
	watermarks map[Time]Time
}

func newTransientIndex() transientIndex {
	return transientIndex{
		history:    make(Snapshot),
		watermarks: make(map[Time]Time),
	}
}

// Registry tracks the checkpoint artifacts of one stream's computation.
//
// The split between the persisted snapshot and the transient index is
// deliberate: the snapshot is the registry's sole contribution to the
// enclosing pipeline checkpoint, while history and watermarks exist only
// to drive retention pruning in the live process.
//
// Update and the pruner's Cleanup are invoked sequentially by the
// pipeline's checkpoint coordinator, so the registry carries no internal
// locking.
type Registry struct {
	// snapshot survives checkpoint round-trips (see MarshalCheckpoint).
	snapshot Snapshot

	// local is rebuilt empty after a reload.
	local transientIndex

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// NewRegistry creates an empty registry bound to one computation's
// artifact stream.
func NewRegistry(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		snapshot: make(Snapshot),
		local:    newTransientIndex(),
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Update records the artifacts freshly persisted for a checkpoint at
// event. The computation engine supplies the full snapshot of all
// currently-valid artifacts it knows about, since earlier refs may have
// been superseded for the same logical time.
//
// An empty snapshot is a no-op beyond logging: no watermark is recorded,
// so the matching Cleanup will have nothing to consume. Otherwise the
// current snapshot is replaced wholesale (never merged), the entries are
// folded into the historical index, and the oldest supplied time is
// recorded as the retention watermark for event.
//
// The watermark is computed from the newly supplied snapshot only, not
// from the full historical index.
func (r *Registry) Update(event Time, persisted Snapshot) {
	if len(persisted) == 0 {
		observability.LogUpdateEmpty(r.logger, event.Milliseconds())
		return
	}

	r.snapshot = persisted.clone()
	for t, ref := range persisted {
		r.local.history[t] = ref
	}

	oldest := persisted.oldest()
	r.local.watermarks[event] = oldest

	observability.LogUpdate(r.logger, event.Milliseconds(), len(persisted), oldest.Milliseconds())
	r.metrics.RecordUpdate(context.Background(), len(persisted))
}

// CurrentSnapshot returns a copy of the artifacts recorded by the most
// recent Update call.
func (r *Registry) CurrentSnapshot() Snapshot {
	return r.snapshot.clone()
}

// History returns a copy of the historical index: every artifact ref
// seen via Update that has not yet been pruned.
func (r *Registry) History() Snapshot {
	return r.local.history.clone()
}

// Watermark returns the pending retention watermark for event, if one
// was recorded by Update and not yet consumed by Cleanup.
func (r *Registry) Watermark(event Time) (Time, bool) {
	w, ok := r.local.watermarks[event]
	return w, ok
}

// takeWatermark removes and returns the watermark for event.
// A second take for the same event reports absence, which is what makes
// Cleanup idempotent.
func (r *Registry) takeWatermark(event Time) (Time, bool) {
	w, ok := r.local.watermarks[event]
	if ok {
		delete(r.local.watermarks, event)
	}
	return w, ok
}

// staleBefore returns the history entries strictly older than watermark.
// Ties at the watermark are kept: the artifact at exactly that time may
// be the minimal one the checkpoint still needs.
func (r *Registry) staleBefore(watermark Time) Snapshot {
	stale := make(Snapshot)
	for t, ref := range r.local.history {
		if t.Before(watermark) {
			stale[t] = ref
		}
	}
	return stale
}

// forgetArtifact drops one entry from the historical index after its
// artifact was deleted from storage.
func (r *Registry) forgetArtifact(t Time) {
	delete(r.local.history, t)
}
