package streamgc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/randalmurphal/streamgc/pkg/streamgc"
	gcerrors "github.com/randalmurphal/streamgc/pkg/streamgc/errors"
	"github.com/randalmurphal/streamgc/pkg/streamgc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEngine collects materialized outputs like a computation
// engine registering recovered state.
type recordingEngine struct {
	outputs map[streamgc.Time][]byte
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{outputs: make(map[streamgc.Time][]byte)}
}

func (e *recordingEngine) materializer(store storage.Store) streamgc.Materializer {
	return streamgc.MaterializerFunc(func(ctx context.Context, t streamgc.Time, ref string) error {
		data, err := store.Read(ctx, ref)
		if err != nil {
			return err
		}
		e.outputs[t] = data
		return nil
	})
}

func TestRecovery_Restore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "state/1000", []byte("one")))
	require.NoError(t, store.Write(ctx, "state/3000", []byte("three")))

	reg := streamgc.NewRegistry()
	reg.Update(5000, streamgc.Snapshot{1000: "state/1000", 3000: "state/3000"})

	engine := newRecordingEngine()
	rec := streamgc.NewRecovery(reg, engine.materializer(store))

	require.NoError(t, rec.Restore(ctx))

	// Exactly the snapshot's events are registered, nothing else.
	assert.Equal(t, map[streamgc.Time][]byte{
		1000: []byte("one"),
		3000: []byte("three"),
	}, engine.outputs)
}

func TestRecovery_Restore_SnapshotOnly(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "old", []byte("old")))
	require.NoError(t, store.Write(ctx, "new", []byte("new")))

	reg := streamgc.NewRegistry()
	reg.Update(5000, streamgc.Snapshot{1000: "old"})
	reg.Update(10000, streamgc.Snapshot{3000: "new"})

	engine := newRecordingEngine()
	rec := streamgc.NewRecovery(reg, engine.materializer(store))

	require.NoError(t, rec.Restore(ctx))

	// Restore reads the current snapshot, not the historical index.
	assert.Equal(t, map[streamgc.Time][]byte{3000: []byte("new")}, engine.outputs)
}

func TestRecovery_Restore_MissingArtifactFatal(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "state/1000", []byte("one")))
	// state/3000 deliberately absent.

	reg := streamgc.NewRegistry()
	reg.Update(5000, streamgc.Snapshot{1000: "state/1000", 3000: "state/3000"})

	engine := newRecordingEngine()
	rec := streamgc.NewRecovery(reg, engine.materializer(store))

	err := rec.Restore(ctx)
	require.Error(t, err)

	var matErr *gcerrors.MaterializationError
	require.ErrorAs(t, err, &matErr)
	assert.Equal(t, "state/3000", matErr.Ref)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.False(t, gcerrors.IsRetryable(err))
}

func TestRecovery_Restore_EngineErrorFatal(t *testing.T) {
	reg := streamgc.NewRegistry()
	reg.Update(5000, streamgc.Snapshot{1000: "ref"})

	regErr := errors.New("state schema mismatch")
	rec := streamgc.NewRecovery(reg, streamgc.MaterializerFunc(
		func(_ context.Context, _ streamgc.Time, _ string) error {
			return regErr
		}))

	err := rec.Restore(context.Background())
	assert.ErrorIs(t, err, regErr)
}

func TestRecovery_Restore_EmptySnapshot(t *testing.T) {
	reg := streamgc.NewRegistry()
	called := false
	rec := streamgc.NewRecovery(reg, streamgc.MaterializerFunc(
		func(_ context.Context, _ streamgc.Time, _ string) error {
			called = true
			return nil
		}))

	require.NoError(t, rec.Restore(context.Background()))
	assert.False(t, called)
}

func TestRecovery_Restore_Hooks(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "r1", []byte("x")))
	require.NoError(t, store.Write(ctx, "r2", []byte("y")))

	reg := streamgc.NewRegistry()
	reg.Update(5000, streamgc.Snapshot{1000: "r1", 2000: "r2"})

	var restored []string
	engine := newRecordingEngine()
	rec := streamgc.NewRecovery(reg, engine.materializer(store),
		streamgc.WithHooks(streamgc.Hooks{
			OnRestored: func(_ streamgc.Time, ref string) {
				restored = append(restored, ref)
			},
		}))

	require.NoError(t, rec.Restore(ctx))
	assert.ElementsMatch(t, []string{"r1", "r2"}, restored)
}
