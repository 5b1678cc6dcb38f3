package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// A cache store also reports malformed stored records as ErrNotFound,
	// which forces recomputation instead of crashing the run.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceMissing indicates the configured source directory does not
	// exist or is not a directory. This is a configuration error and
	// aborts the run.
	ErrSourceMissing = errors.New("source directory missing")

	// ErrDocumentRead indicates a source file could not be read for
	// hashing or rasterizing. The document is skipped; the run continues.
	ErrDocumentRead = errors.New("document unreadable")

	// ErrRasterization indicates the external renderer failed. The
	// document is treated as having zero pages and cached as such.
	ErrRasterization = errors.New("rasterization failed")

	// ErrPersistence indicates the cache or index could not be written
	// durably. The in-memory result is still usable for the current run.
	ErrPersistence = errors.New("cache persistence failed")
)
