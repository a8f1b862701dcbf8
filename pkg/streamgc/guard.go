package streamgc

import (
	"context"
	"encoding/json"
	"fmt"

	gcerrors "github.com/randalmurphal/streamgc/pkg/streamgc/errors"
)

// MarshalCheckpoint serializes the registry's contribution to the
// pipeline's checkpoint payload: the current snapshot, and nothing else.
//
// The pipeline reference is the safety check, not a data source. If it
// is absent, or no pipeline-wide checkpoint is in progress, the attempt
// is rejected: the registry was most likely captured by a closure and is
// about to be shipped to a remote worker, and failing loudly here beats
// silently serializing a semantically meaningless blob.
//
// Call inside Pipeline.WithCheckpointLock.
func (r *Registry) MarshalCheckpoint(p *Pipeline) ([]byte, error) {
	if p == nil {
		return nil, gcerrors.ErrMissingPipeline
	}
	if !p.Checkpointing() {
		return nil, &gcerrors.UnsafeCaptureError{PipelineID: p.ID()}
	}

	data, err := json.Marshal(r.snapshot)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	r.metrics.RecordSnapshotSize(context.Background(), int64(len(data)))
	return data, nil
}

// UnmarshalCheckpoint rebuilds a registry from a checkpoint payload
// produced by MarshalCheckpoint.
//
// Only the snapshot survives the round-trip. History and watermarks are
// reset to empty: historical bookkeeping is meaningful only in the
// process that has been continuously running the pipeline, and a
// restored process rebuilds its own going forward.
func UnmarshalCheckpoint(data []byte, opts ...Option) (*Registry, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("deserialize snapshot: %w", err)
	}
	if snapshot == nil {
		snapshot = make(Snapshot)
	}

	r := NewRegistry(opts...)
	r.snapshot = snapshot
	return r, nil
}
