// Package observability provides structured logging, metrics, and
// distributed tracing for checkpoint retention and recovery.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Logical times cross this package as raw milliseconds so it stays free
// of dependencies on the core types.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds pipeline context to a logger.
// Returns a new logger with a pipeline_id field.
func EnrichLogger(logger *slog.Logger, pipelineID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("pipeline_id", pipelineID))
}

// LogUpdate logs that a checkpoint event recorded new artifacts.
func LogUpdate(logger *slog.Logger, eventMs int64, artifacts int, oldestMs int64) {
	if logger == nil {
		return
	}
	logger.Info("checkpoint artifacts recorded",
		slog.Int64("event_ms", eventMs),
		slog.Int("artifacts", artifacts),
		slog.Int64("watermark_ms", oldestMs),
	)
}

// LogUpdateEmpty logs an update call that carried no new artifacts.
func LogUpdateEmpty(logger *slog.Logger, eventMs int64) {
	if logger == nil {
		return
	}
	logger.Debug("no new checkpoint artifacts",
		slog.Int64("event_ms", eventMs),
	)
}

// LogCleanupSkip logs a cleanup call with no pending watermark.
func LogCleanupSkip(logger *slog.Logger, eventMs int64) {
	if logger == nil {
		return
	}
	logger.Debug("nothing to prune for checkpoint",
		slog.Int64("event_ms", eventMs),
	)
}

// LogCleanupStart logs the start of a prune pass.
func LogCleanupStart(logger *slog.Logger, eventMs, watermarkMs int64, candidates int) {
	if logger == nil {
		return
	}
	logger.Info("pruning artifacts older than watermark",
		slog.Int64("event_ms", eventMs),
		slog.Int64("watermark_ms", watermarkMs),
		slog.Int("candidates", candidates),
	)
}

// LogArtifactDeleted logs a successful artifact deletion.
func LogArtifactDeleted(logger *slog.Logger, eventMs int64, ref string) {
	if logger == nil {
		return
	}
	logger.Info("artifact deleted",
		slog.Int64("event_ms", eventMs),
		slog.String("ref", ref),
	)
}

// LogDeleteFailed logs a failed artifact deletion (non-fatal, retried later).
func LogDeleteFailed(logger *slog.Logger, eventMs int64, ref string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("artifact delete failed, will retry on next cleanup",
		slog.Int64("event_ms", eventMs),
		slog.String("ref", ref),
		slog.String("error", err.Error()),
	)
}

// LogRestoreStart logs the start of recovery.
func LogRestoreStart(logger *slog.Logger, artifacts int) {
	if logger == nil {
		return
	}
	logger.Info("restoring state from checkpoint artifacts",
		slog.Int("artifacts", artifacts),
	)
}

// LogRestoreArtifact logs one materialized artifact during recovery.
func LogRestoreArtifact(logger *slog.Logger, eventMs int64, ref string) {
	if logger == nil {
		return
	}
	logger.Debug("artifact restored",
		slog.Int64("event_ms", eventMs),
		slog.String("ref", ref),
	)
}

// LogRestoreComplete logs successful recovery.
func LogRestoreComplete(logger *slog.Logger, artifacts int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("restore completed",
		slog.Int("artifacts", artifacts),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRestoreError logs recovery failure.
func LogRestoreError(logger *slog.Logger, eventMs int64, ref string, err error) {
	if logger == nil {
		return
	}
	logger.Error("restore failed",
		slog.Int64("event_ms", eventMs),
		slog.String("ref", ref),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
