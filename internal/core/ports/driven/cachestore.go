package driven

import (
	"context"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

// CacheStore persists extraction records and the path index.
//
// Consistency contract: a record referenced by the index must be readable
// whenever the index entry is visible. The store guarantees that each
// individual write is atomic (a reader never observes a half-written
// record or index); the record-before-index write ordering that makes the
// pair consistent is the coordinator's responsibility, not the store's.
type CacheStore interface {
	// ReadIndex loads the path index. An absent or unparsable index is
	// returned as an empty mapping, never as an error: corruption means
	// "no prior cache".
	ReadIndex(ctx context.Context) (domain.Index, error)

	// WriteIndex atomically replaces the path index.
	WriteIndex(ctx context.Context, index domain.Index) error

	// ReadRecord loads one extraction record by cache object name.
	// Returns domain.ErrNotFound for missing or malformed records,
	// forcing recomputation.
	ReadRecord(ctx context.Context, objectName string) (*domain.ExtractionRecord, error)

	// WriteRecord atomically stores one extraction record under the
	// given cache object name.
	WriteRecord(ctx context.Context, objectName string, record *domain.ExtractionRecord) error
}
