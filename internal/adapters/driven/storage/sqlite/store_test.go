package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)

	// Both tables exist and start empty.
	index, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, index)

	_, err = store.ReadRecord(context.Background(), "missing.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WriteIndex(context.Background(), domain.Index{
		"/docs/a.pdf": {Digest: "d", CacheObject: "d.json"},
	}))
	require.NoError(t, store.Close())

	// Reopening must not rerun migrations or lose data.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	index, err := reopened.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Len(t, index, 1)
}

func TestStore_WriteIndex_ReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteIndex(ctx, domain.Index{
		"/docs/a.pdf": {SizeBytes: 1, ModifiedAt: 10, Digest: "da", CacheObject: "da.json"},
		"/docs/b.pdf": {SizeBytes: 2, ModifiedAt: 20, Digest: "db", CacheObject: "db.json"},
	}))

	require.NoError(t, store.WriteIndex(ctx, domain.Index{
		"/docs/c.pdf": {SizeBytes: 3, ModifiedAt: 30, Digest: "dc", CacheObject: "dc.json"},
	}))

	index, err := store.ReadIndex(ctx)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, "dc", index["/docs/c.pdf"].Digest)
}

func TestStore_RecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &domain.ExtractionRecord{
		AbsolutePath: "/docs/report.pdf",
		Digest:       "abc",
		SizeBytes:    7,
		ModifiedAt:   1700000000,
		CacheObject:  "abc.json",
		Pages:        []string{"first page", "second page"},
	}
	require.NoError(t, store.WriteRecord(ctx, record.CacheObject, record))

	reloaded, err := store.ReadRecord(ctx, "abc.json")
	require.NoError(t, err)
	assert.Equal(t, record, reloaded)
}

func TestStore_WriteRecord_Upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &domain.ExtractionRecord{CacheObject: "abc.json", Pages: []string{"v1"}}
	require.NoError(t, store.WriteRecord(ctx, "abc.json", record))

	record.Pages = []string{"v2"}
	require.NoError(t, store.WriteRecord(ctx, "abc.json", record))

	reloaded, err := store.ReadRecord(ctx, "abc.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, reloaded.Pages)
}

func TestStore_CorruptPayloadIsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO records (cache_object, payload) VALUES (?, ?)", "bad.json", "{nope")
	require.NoError(t, err)

	_, err = store.ReadRecord(ctx, "bad.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
