package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

func testRecord() *domain.ExtractionRecord {
	return &domain.ExtractionRecord{
		AbsolutePath: "/docs/report.pdf",
		Digest:       "abc123",
		SizeBytes:    42,
		ModifiedAt:   1700000000,
		CacheObject:  "abc123.json",
		Pages:        []string{"page one text", "page two text"},
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_ReadIndex_MissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	index, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestStore_ReadIndex_CorruptFileIsEmptyIndex(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, indexFileName), []byte("{not json"), 0o600))

	index, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestStore_WriteIndex_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	index := domain.Index{
		"/docs/a.pdf": {SizeBytes: 10, ModifiedAt: 99, Digest: "d1", CacheObject: "d1.json"},
		"/docs/b.pdf": {SizeBytes: 20, ModifiedAt: 98, Digest: "d2", CacheObject: "d2.json"},
	}
	require.NoError(t, store.WriteIndex(context.Background(), index))

	reloaded, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, index, reloaded)
}

func TestStore_ReadRecord_Missing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadRecord(context.Background(), "nope.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReadRecord_CorruptIsNotFound(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("garbage"), 0o600))

	_, err = store.ReadRecord(context.Background(), "bad.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_WriteRecord_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	record := testRecord()
	require.NoError(t, store.WriteRecord(context.Background(), record.CacheObject, record))

	reloaded, err := store.ReadRecord(context.Background(), record.CacheObject)
	require.NoError(t, err)
	assert.Equal(t, record, reloaded)
}

func TestStore_WriteRecord_OverwritesInPlace(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	record := testRecord()
	require.NoError(t, store.WriteRecord(context.Background(), record.CacheObject, record))

	record.Pages = []string{"rewritten"}
	require.NoError(t, store.WriteRecord(context.Background(), record.CacheObject, record))

	reloaded, err := store.ReadRecord(context.Background(), record.CacheObject)
	require.NoError(t, err)
	assert.Equal(t, []string{"rewritten"}, reloaded.Pages)
}

func TestStore_Writes_LeaveNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	record := testRecord()
	require.NoError(t, store.WriteRecord(context.Background(), record.CacheObject, record))
	require.NoError(t, store.WriteIndex(context.Background(), domain.Index{
		record.AbsolutePath: record.IndexEntry(),
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"),
			"temporary file left behind: %s", entry.Name())
	}
	assert.Len(t, entries, 2)
}

func TestStore_UnreferencedRecordIsHarmless(t *testing.T) {
	// Simulates the crash window between a record write and the index
	// update: the record exists, the index does not mention it.
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	record := testRecord()
	require.NoError(t, store.WriteRecord(context.Background(), record.CacheObject, record))

	index, err := store.ReadIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, index)

	// The orphaned object is still directly readable.
	reloaded, err := store.ReadRecord(context.Background(), record.CacheObject)
	require.NoError(t, err)
	assert.Equal(t, record.Digest, reloaded.Digest)
}
