/*
Package streamgc tracks, prunes, and recovers the checkpoint artifacts
of a continuously-running streaming computation.

# Overview

A streaming pipeline periodically persists intermediate state
("artifacts") so that after a failure it can resume without replaying
the entire input history. Artifacts accumulate; only the most recent
ones needed to reconstruct state from any still-relevant point must be
retained. streamgc solves that retention problem: it keeps an
append-only index of (logical time → artifact ref) mappings, decides
which artifacts a finalized checkpoint has made obsolete, deletes them
with failure-tolerant cleanup, and replays the survivors on restart.

streamgc does not decide when to checkpoint, does not write artifacts,
and does not implement storage — those are the computation engine's and
the storage backend's jobs. It decides which artifacts to keep, deletes
the rest, and restores from the kept ones.

# Basic Usage

The checkpoint coordinator drives one Update/Cleanup pair per cycle:

	store := storage.NewMemoryStore()
	reg := streamgc.NewRegistry()
	pruner := streamgc.NewPruner(reg, storage.NewStaticResolver(store))

	// The engine reports freshly persisted artifacts at each checkpoint.
	reg.Update(5000, streamgc.Snapshot{
	    1000: "state/batch-1000",
	    3000: "state/batch-3000",
	})

	// ... the overall pipeline checkpoint for event 5000 is durably
	// written by the enclosing mechanism ...

	// Now anything older than what checkpoint 5000 depends on can go.
	stats := pruner.Cleanup(ctx, 5000)

Update with an empty snapshot is a no-op, and Cleanup for an event with
no pending watermark is a no-op, so the coordinator never needs to guard
its calls.

# Checkpoint Payload

The registry contributes exactly one field to the pipeline's checkpoint:
the current snapshot. Serialization is guarded — it must happen inside a
deliberate pipeline-wide checkpoint, or it fails with an unsafe-capture
error (the usual cause is a closure accidentally capturing the registry
on its way to a remote worker):

	pipeline := streamgc.NewPipeline()
	var payload []byte
	err := pipeline.WithCheckpointLock(func() error {
	    var err error
	    payload, err = reg.MarshalCheckpoint(pipeline)
	    return err
	})

# Recovery

After a restart, rebuild the registry from the payload and replay the
snapshot's artifacts. History and watermarks come back empty — a
restored process rebuilds its own bookkeeping going forward:

	reg, err := streamgc.UnmarshalCheckpoint(payload)
	if err != nil {
	    log.Fatal(err)
	}

	rec := streamgc.NewRecovery(reg, streamgc.MaterializerFunc(
	    func(ctx context.Context, t streamgc.Time, ref string) error {
	        data, err := store.Read(ctx, ref)
	        if err != nil {
	            return err
	        }
	        return engine.Register(t, data)
	    }))
	if err := rec.Restore(ctx); err != nil {
	    log.Fatal(err) // a missing artifact is fatal to the restart
	}

# Failure Tolerance

Storage deletions are best-effort: a failed delete is logged, its entry
stays in the historical index, and the next cleanup pass that still
finds it stale retries it. The pruner also drops its cached storage
handle on any delete failure so the next attempt re-resolves the
connection. Every other error — serialization outside a checkpoint, a
missing pipeline reference, an unreadable artifact during restore —
surfaces immediately.

# Observability

Logging uses log/slog and is disabled until a logger is attached with
WithLogger. Metrics and traces use OpenTelemetry via the observability
package; both default to no-ops.
*/
package streamgc
