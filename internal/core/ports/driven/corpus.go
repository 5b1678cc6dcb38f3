package driven

import "context"

// CorpusScanner enumerates candidate documents for extraction.
type CorpusScanner interface {
	// ListDocuments returns the absolute paths of all PDF files directly
	// inside dir, sorted for deterministic processing order. The scan is
	// non-recursive. A missing directory is a configuration error and is
	// reported as domain.ErrSourceMissing.
	ListDocuments(dir string) ([]string, error)

	// Watch emits the path of a candidate document every time it is
	// created or modified under dir, until ctx is cancelled. Used by
	// watch mode to re-run extraction incrementally.
	Watch(ctx context.Context, dir string) (<-chan string, error)
}
