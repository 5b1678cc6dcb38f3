package memory

import (
	"context"
	"sync"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// Store is an in-memory implementation of driven.CacheStore. Nothing
// survives the process; useful for tests and dry runs.
type Store struct {
	mu      sync.RWMutex
	index   domain.Index
	records map[string]domain.ExtractionRecord
}

// NewStore creates a new in-memory cache store.
func NewStore() *Store {
	return &Store{
		index:   domain.Index{},
		records: make(map[string]domain.ExtractionRecord),
	}
}

// ReadIndex returns a copy of the current index.
func (s *Store) ReadIndex(_ context.Context) (domain.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(domain.Index, len(s.index))
	for path, entry := range s.index {
		index[path] = entry
	}
	return index, nil
}

// WriteIndex replaces the index wholesale.
func (s *Store) WriteIndex(_ context.Context, index domain.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = make(domain.Index, len(index))
	for path, entry := range index {
		s.index[path] = entry
	}
	return nil
}

// ReadRecord retrieves a record by cache object name.
func (s *Store) ReadRecord(_ context.Context, objectName string) (*domain.ExtractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[objectName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// WriteRecord stores a record under the given cache object name.
func (s *Store) WriteRecord(_ context.Context, objectName string, record *domain.ExtractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[objectName] = *record
	return nil
}
