package driving

import (
	"context"
	"regexp"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
)

// ExtractionService is the sole entry point the CLI layer calls per
// document. The caller loads the index once per run via LoadIndex, passes
// it to every Process call, and the service persists incremental updates
// as documents complete.
type ExtractionService interface {
	// Process returns the extraction record for one document, reusing
	// the cache when the document is unchanged and re-extracting
	// otherwise. The passed index is updated in place on a cache miss.
	Process(ctx context.Context, path string, index domain.Index) (*domain.ExtractionRecord, error)

	// LoadIndex reads the durable index at run start.
	LoadIndex(ctx context.Context) (domain.Index, error)

	// SaveIndex persists the index wholesale.
	SaveIndex(ctx context.Context, index domain.Index) error
}

// SearchService scans extraction records for a keyword or pattern.
type SearchService interface {
	// Search returns every matching line across the given records,
	// ordered by document, then page, then line.
	Search(records []*domain.ExtractionRecord, query string, opts domain.SearchOptions) ([]domain.Match, error)

	// CompileQuery exposes the regexp Search matches with, so callers
	// can highlight the matched spans in their own output.
	CompileQuery(query string, opts domain.SearchOptions) (*regexp.Regexp, error)
}
