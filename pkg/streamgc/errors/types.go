package errors

import (
	"errors"
	"fmt"
)

// ErrMissingPipeline indicates the registry was asked to serialize its
// state without a reference to the enclosing pipeline. Without the
// pipeline there is no checkpoint flag to consult, so the attempt is
// rejected rather than risking an accidental capture.
var ErrMissingPipeline = errors.New("pipeline reference missing at serialization time")

// DeletionError indicates a storage delete failed for one artifact.
// The entry stays in the historical index and is retried on a later
// cleanup pass; the error is never propagated past the pruner.
type DeletionError struct {
	Ref string
	Err error
}

// Error implements the error interface.
func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete artifact %s: %v", e.Ref, e.Err)
}

// Unwrap returns the underlying storage error.
func (e *DeletionError) Unwrap() error {
	return e.Err
}

// UnsafeCaptureError indicates registry state was about to be serialized
// outside a guarded whole-pipeline checkpoint. The usual cause is a
// closure accidentally capturing the registry and being shipped to a
// remote worker.
type UnsafeCaptureError struct {
	PipelineID string
}

// Error implements the error interface.
func (e *UnsafeCaptureError) Error() string {
	return fmt.Sprintf("registry for pipeline %s is not serializable: "+
		"serialization attempted outside a checkpoint operation, "+
		"likely via a closure that captured the registry", e.PipelineID)
}

// MaterializationError indicates an artifact referenced by the current
// snapshot could not be re-read during restore. Recovery cannot proceed
// with a gap, so this is fatal to the restart.
type MaterializationError struct {
	Event string
	Ref   string
	Err   error
}

// Error implements the error interface.
func (e *MaterializationError) Error() string {
	return fmt.Sprintf("materialize artifact %s for event %s: %v", e.Ref, e.Event, e.Err)
}

// Unwrap returns the underlying read error.
func (e *MaterializationError) Unwrap() error {
	return e.Err
}
