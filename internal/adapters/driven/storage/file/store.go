package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// indexFileName is the well-known index location inside the cache directory.
const indexFileName = "ocr_index.json"

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// Store is the default cache backend: a directory of independent JSON
// record files, one per unique content digest, plus a single index file.
// Every write goes to a temporary file in the same directory and is
// renamed over the destination, so a reader never observes a half-written
// file even if the process dies mid-write.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a cache directory.
// If cacheDir is empty, defaults to ~/.pagehound/cache.
func NewStore(cacheDir string) (*Store, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".pagehound", "cache")
	}

	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Store{dir: cacheDir}, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// ReadIndex loads the path index. An absent or unparsable index file is
// treated as "no prior cache" and returned as an empty mapping.
func (s *Store) ReadIndex(_ context.Context) (domain.Index, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Index unreadable: %v (starting with empty index)", err)
		}
		return domain.Index{}, nil
	}

	var index domain.Index
	if err := json.Unmarshal(data, &index); err != nil {
		logger.Warn("Index corrupt: %v (starting with empty index)", err)
		return domain.Index{}, nil
	}
	if index == nil {
		index = domain.Index{}
	}
	return index, nil
}

// WriteIndex atomically replaces the index file.
func (s *Store) WriteIndex(_ context.Context, index domain.Index) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshalling index: %w", err)
	}
	return s.writeAtomic(indexFileName, data)
}

// ReadRecord loads one extraction record. Missing and malformed records
// both report domain.ErrNotFound so the coordinator recomputes them.
func (s *Store) ReadRecord(_ context.Context, objectName string) (*domain.ExtractionRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, objectName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading record %s: %w", objectName, err)
	}

	var record domain.ExtractionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warn("Record %s corrupt: %v (treating as missing)", objectName, err)
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// WriteRecord atomically stores one extraction record.
func (s *Store) WriteRecord(_ context.Context, objectName string, record *domain.ExtractionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshalling record %s: %w", objectName, err)
	}
	return s.writeAtomic(objectName, data)
}

// writeAtomic writes data to a uniquely named temporary file in the cache
// directory, then renames it over name. The unique suffix keeps two runs
// from clobbering each other's in-flight writes.
func (s *Store) writeAtomic(name string, data []byte) error {
	dest := filepath.Join(s.dir, name)
	tmp := dest + ".tmp-" + uuid.NewString()

	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s into place: %w", tmp, err)
	}
	return nil
}
