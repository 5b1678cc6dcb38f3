// Package domain defines the core business entities for Pagehound.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentIdentity: cheap staleness metadata for a source PDF
//   - IndexEntry: durable index record mapping a path to its cache object
//   - ExtractionRecord: cached OCR output for one document
//   - Match: a single search hit (file, page, line)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
