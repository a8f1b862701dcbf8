package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/streamgc/pkg/streamgc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) storage.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name+"/Write_and_Read", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		data := []byte("artifact bytes")
		err := store.Write(ctx, "state/batch-1000", data)
		require.NoError(t, err)

		read, err := store.Read(ctx, "state/batch-1000")
		require.NoError(t, err)
		assert.Equal(t, data, read)
	})

	t.Run(name+"/Read_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Read(ctx, "state/nonexistent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run(name+"/Write_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Write(ctx, "state/x", []byte("first")))
		require.NoError(t, store.Write(ctx, "state/x", []byte("second")))

		read, err := store.Read(ctx, "state/x")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), read)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Write(ctx, "state/x", []byte("data")))
		require.NoError(t, store.Delete(ctx, "state/x", false))

		_, err := store.Read(ctx, "state/x")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run(name+"/Delete_Nonexistent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		// Should not error when deleting nonexistent
		assert.NoError(t, store.Delete(ctx, "state/nonexistent", false))
		assert.NoError(t, store.Delete(ctx, "state/nonexistent", true))
	})

	t.Run(name+"/Delete_Recursive", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Write(ctx, "state/batch-1/part-0", []byte("p0")))
		require.NoError(t, store.Write(ctx, "state/batch-1/part-1", []byte("p1")))
		require.NoError(t, store.Write(ctx, "state/batch-2/part-0", []byte("other")))

		require.NoError(t, store.Delete(ctx, "state/batch-1", true))

		_, err := store.Read(ctx, "state/batch-1/part-0")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.Read(ctx, "state/batch-1/part-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// Siblings survive
		read, err := store.Read(ctx, "state/batch-2/part-0")
		require.NoError(t, err)
		assert.Equal(t, []byte("other"), read)
	})

	t.Run(name+"/DataCopy", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		original := []byte("original data")
		require.NoError(t, store.Write(ctx, "state/x", original))

		// Modify original slice after write
		original[0] = 'X'

		read, err := store.Read(ctx, "state/x")
		require.NoError(t, err)
		assert.Equal(t, []byte("original data"), read)
	})

	t.Run(name+"/Close_ThenError", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		err := store.Write(ctx, "state/x", []byte("data"))
		assert.ErrorIs(t, err, storage.ErrStoreClosed)

		_, err = store.Read(ctx, "state/x")
		assert.ErrorIs(t, err, storage.ErrStoreClosed)

		err = store.Delete(ctx, "state/x", true)
		assert.ErrorIs(t, err, storage.ErrStoreClosed)
	})
}

// TestMemoryStore runs contract tests against MemoryStore.
func TestMemoryStore(t *testing.T) {
	factory := func(t *testing.T) storage.Store {
		return storage.NewMemoryStore()
	}
	storeContractTest(t, "MemoryStore", factory)
}

// TestFileStore runs contract tests against FileStore.
func TestFileStore(t *testing.T) {
	factory := func(t *testing.T) storage.Store {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)
		return store
	}
	storeContractTest(t, "FileStore", factory)
}

// TestSQLiteStore runs contract tests against SQLiteStore.
func TestSQLiteStore(t *testing.T) {
	factory := func(t *testing.T) storage.Store {
		store, err := storage.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	}
	storeContractTest(t, "SQLiteStore", factory)
}

func TestMemoryStore_Len(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	assert.Equal(t, 0, store.Len())
	require.NoError(t, store.Write(ctx, "a", []byte("1")))
	require.NoError(t, store.Write(ctx, "b", []byte("2")))
	assert.Equal(t, 2, store.Len())
}

func TestFileStore_RejectsEscapingRefs(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	err = store.Write(ctx, "../outside", []byte("x"))
	assert.Error(t, err)

	_, err = store.Read(ctx, "/etc/passwd")
	assert.Error(t, err)
}

func TestFileStore_Root(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, dir, store.Root())
}

func TestStaticResolver(t *testing.T) {
	store := storage.NewMemoryStore()
	resolver := storage.NewStaticResolver(store)

	resolved, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, storage.Store(store), resolved)
}

func TestFuncResolver(t *testing.T) {
	store := storage.NewMemoryStore()
	calls := 0
	resolver := storage.FuncResolver(func(_ context.Context) (storage.Store, error) {
		calls++
		return store, nil
	})

	resolved, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resolved)
	assert.Equal(t, 1, calls)
}
