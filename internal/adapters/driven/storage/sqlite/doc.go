// Package sqlite provides a SQLite-backed implementation of driven.CacheStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Index entries and
// extraction records share one database file, so the whole cache can be
// copied or inspected as a single artifact. It is selected with
// `store = "sqlite"` in the config file or `--store sqlite` on the CLI; the
// JSON-file backend remains the default.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.pagehound/cache/ocr_cache.db
package sqlite
