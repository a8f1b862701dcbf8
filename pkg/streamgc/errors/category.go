// Package errors classifies the failures that arise while tracking,
// pruning, and recovering checkpoint artifacts.
//
// The propagation policy is deliberately lopsided: storage deletions are
// best-effort garbage collection and their failures are absorbed locally,
// while everything else (accidental capture, missing pipeline context,
// unreadable artifacts during restore) surfaces immediately because it
// indicates a programming bug or unrecoverable data loss.
package errors

import "errors"

// Category represents how an error should be handled.
type Category int

const (
	// CategoryTransient indicates the operation can be retried later.
	// Example: a storage delete failing on a stale connection handle.
	CategoryTransient Category = iota

	// CategoryFatal indicates retry won't help and the error must
	// surface to the caller.
	// Examples: serialization outside a checkpoint, a snapshot artifact
	// that can no longer be read.
	CategoryFatal
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransient:
		return "transient"
	case CategoryFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Categorize determines how an error should be handled.
func Categorize(err error) Category {
	if err == nil {
		return CategoryFatal // shouldn't happen, fail safe
	}

	var delErr *DeletionError
	if errors.As(err, &delErr) {
		return CategoryTransient
	}

	var capErr *UnsafeCaptureError
	if errors.As(err, &capErr) {
		return CategoryFatal
	}

	var matErr *MaterializationError
	if errors.As(err, &matErr) {
		return CategoryFatal
	}

	if errors.Is(err, ErrMissingPipeline) {
		return CategoryFatal
	}

	// Unknown errors are fatal (fail safe).
	return CategoryFatal
}

// IsRetryable reports whether the error should be retried on a later pass.
func IsRetryable(err error) bool {
	return Categorize(err) == CategoryTransient
}
