// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CacheStore: durable persistence for extraction records and the
//     path index. The default adapter is a directory of JSON files with
//     atomic renames; a sqlite adapter is also provided.
//   - Rasterizer: renders a PDF into ordered page images (external
//     collaborator, e.g. poppler's pdftoppm).
//   - Recognizer: turns one page image into text (external collaborator,
//     e.g. tesseract via gosseract).
//   - CorpusScanner: enumerates candidate documents in the source
//     directory.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
