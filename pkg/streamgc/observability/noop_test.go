package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_DoesNotPanic(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordUpdate(ctx, 3)
		m.RecordUpdate(nil, 0)
		m.RecordPrune(ctx, 2, 1, 10*time.Millisecond)
		m.RecordRestore(ctx, 2, 10*time.Millisecond, errors.New("test"))
		m.RecordRestore(ctx, 0, 0, nil)
		m.RecordSnapshotSize(ctx, 1024)
	})
}

func TestNoopSpanManager_DoesNotPanic(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		spanCtx, span := sm.StartCleanupSpan(ctx, 5000)
		assert.Equal(t, ctx, spanCtx)
		sm.EndSpanWithError(span, errors.New("test"))

		spanCtx, span = sm.StartRestoreSpan(ctx, 2)
		assert.Equal(t, ctx, spanCtx)
		sm.EndSpanWithError(span, nil)

		sm.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
	})
}

func TestNoopSpanManager_NilSpan(t *testing.T) {
	sm := NoopSpanManager{}
	assert.NotPanics(t, func() {
		sm.EndSpanWithError(nil, nil)
	})
}
