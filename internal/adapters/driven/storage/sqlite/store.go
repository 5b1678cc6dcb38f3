package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pagehound/pagehound-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.CacheStore. Index
// entries and records live in one database file; each write is a single
// statement or transaction, so SQLite's journal provides the atomicity
// the file backend gets from rename.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite cache store at the specified cache directory.
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

	dbPath := filepath.Join(cacheDir, "ocr_cache.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReadIndex loads all index entries. Rows that fail to scan are skipped
// with a warning rather than failing the run; corruption means "no prior
// cache" for the affected documents.
func (s *Store) ReadIndex(ctx context.Context) (domain.Index, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, size, mtime, sha256, cache_object FROM index_entries
	`)
	if err != nil {
		logger.Warn("Index query failed: %v (starting with empty index)", err)
		return domain.Index{}, nil
	}
	defer rows.Close()

	index := domain.Index{}
	for rows.Next() {
		var path string
		var entry domain.IndexEntry
		if err := rows.Scan(&path, &entry.SizeBytes, &entry.ModifiedAt, &entry.Digest, &entry.CacheObject); err != nil {
			logger.Warn("Index row corrupt: %v (skipping)", err)
			continue
		}
		index[path] = entry
	}

	if err := rows.Err(); err != nil {
		logger.Warn("Index iteration failed: %v", err)
	}
	return index, nil
}

// WriteIndex replaces the whole index in one transaction.
func (s *Store) WriteIndex(ctx context.Context, index domain.Index) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_entries"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO index_entries (path, size, mtime, sha256, cache_object)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for path, entry := range index {
		if _, err := stmt.ExecContext(ctx, path, entry.SizeBytes, entry.ModifiedAt,
			entry.Digest, entry.CacheObject); err != nil {
			return fmt.Errorf("saving index entry %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// ReadRecord loads one extraction record. Missing rows and undecodable
// payloads both report domain.ErrNotFound.
func (s *Store) ReadRecord(ctx context.Context, objectName string) (*domain.ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT payload FROM records WHERE cache_object = ?
	`, objectName)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning record %s: %w", objectName, err)
	}

	var record domain.ExtractionRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		logger.Warn("Record %s corrupt: %v (treating as missing)", objectName, err)
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// WriteRecord stores one extraction record, replacing any previous
// payload for the same cache object.
func (s *Store) WriteRecord(ctx context.Context, objectName string, record *domain.ExtractionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshalling record %s: %w", objectName, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (cache_object, payload)
		VALUES (?, ?)
		ON CONFLICT(cache_object) DO UPDATE SET
			payload = excluded.payload
	`, objectName, string(payload))

	if err != nil {
		return fmt.Errorf("saving record %s: %w", objectName, err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
