package benchmarks

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/randalmurphal/streamgc/pkg/streamgc"
	"github.com/randalmurphal/streamgc/pkg/streamgc/storage"
)

// seedRegistry loads n history entries plus a final watermark-bearing
// update, so a single Cleanup pass prunes n entries.
func seedRegistry(b *testing.B, store storage.Store, n int) (*streamgc.Registry, streamgc.Time) {
	b.Helper()
	ctx := context.Background()
	reg := streamgc.NewRegistry()

	for i := 0; i < n; i++ {
		t := streamgc.Time(i * 1000)
		ref := fmt.Sprintf("state/batch-%d", i)
		if err := store.Write(ctx, ref, []byte("artifact payload")); err != nil {
			b.Fatal(err)
		}
		reg.Update(t+500, streamgc.Snapshot{t: ref})
	}

	final := streamgc.Time(n * 1000)
	ref := fmt.Sprintf("state/batch-%d", n)
	if err := store.Write(ctx, ref, []byte("artifact payload")); err != nil {
		b.Fatal(err)
	}
	reg.Update(final, streamgc.Snapshot{final: ref})
	return reg, final
}

// BenchmarkRegistry_Update measures snapshot recording.
func BenchmarkRegistry_Update(b *testing.B) {
	reg := streamgc.NewRegistry()
	snapshot := streamgc.Snapshot{
		1000: "state/batch-1",
		2000: "state/batch-2",
		3000: "state/batch-3",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.Update(streamgc.Time(i), snapshot)
	}
}

// BenchmarkPruner_Cleanup_Memory measures a prune pass over 100 stale
// artifacts in the in-memory store.
func BenchmarkPruner_Cleanup_Memory(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		store := storage.NewMemoryStore()
		reg, final := seedRegistry(b, store, 100)
		pruner := streamgc.NewPruner(reg, storage.NewStaticResolver(store))
		b.StartTimer()

		pruner.Cleanup(ctx, final)
	}
}

// BenchmarkPruner_Cleanup_SQLite measures a prune pass over 100 stale
// artifacts in the SQLite store.
func BenchmarkPruner_Cleanup_SQLite(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		store, cleanup := createSQLiteStore(b)
		reg, final := seedRegistry(b, store, 100)
		pruner := streamgc.NewPruner(reg, storage.NewStaticResolver(store))
		b.StartTimer()

		pruner.Cleanup(ctx, final)

		b.StopTimer()
		cleanup()
		b.StartTimer()
	}
}

// BenchmarkMarshalCheckpoint measures guarded snapshot serialization.
func BenchmarkMarshalCheckpoint(b *testing.B) {
	reg := streamgc.NewRegistry()
	snapshot := make(streamgc.Snapshot, 100)
	for i := 0; i < 100; i++ {
		snapshot[streamgc.Time(i*1000)] = fmt.Sprintf("state/batch-%d", i)
	}
	reg.Update(1000000, snapshot)
	pipeline := streamgc.NewPipeline()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := pipeline.WithCheckpointLock(func() error {
			_, err := reg.MarshalCheckpoint(pipeline)
			return err
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

// createSQLiteStore creates a temp-file SQLite store and a cleanup func.
func createSQLiteStore(b *testing.B) (*storage.SQLiteStore, func()) {
	b.Helper()
	f, err := os.CreateTemp(b.TempDir(), "artifacts-*.db")
	if err != nil {
		b.Fatal(err)
	}
	path := f.Name()
	f.Close()

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		b.Fatal(err)
	}
	return store, func() {
		store.Close()
	}
}
