package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driving"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.ExtractionService = (*Coordinator)(nil)

// Coordinator decides per document whether the cached extraction is still
// valid and orchestrates recomputation when it is not. It owns the only
// mutations of the index and enforces the record-before-index write
// ordering that keeps the store consistent across crashes.
type Coordinator struct {
	store      driven.CacheStore
	rasterizer driven.Rasterizer
	recognizer driven.Recognizer
	pool       *PagePool
}

// NewCoordinator creates an extraction coordinator with a page pool of
// the given size (non-positive means one worker per CPU).
func NewCoordinator(
	store driven.CacheStore,
	rasterizer driven.Rasterizer,
	recognizer driven.Recognizer,
	workers int,
) *Coordinator {
	return &Coordinator{
		store:      store,
		rasterizer: rasterizer,
		recognizer: recognizer,
		pool:       NewPagePool(recognizer, workers),
	}
}

// LoadIndex reads the durable index at run start.
func (c *Coordinator) LoadIndex(ctx context.Context) (domain.Index, error) {
	return c.store.ReadIndex(ctx)
}

// SaveIndex persists the index wholesale.
func (c *Coordinator) SaveIndex(ctx context.Context, index domain.Index) error {
	return c.store.WriteIndex(ctx, index)
}

// Process returns the extraction record for one document.
//
// The fast path compares size and modification time against the index
// entry; on an exact match the stored record is returned without hashing
// or recognition. Otherwise the full file is hashed, rasterized and run
// through the page pool, and the result is persisted record-first,
// index-second. The passed index is updated in place so the caller can
// keep reusing it for the rest of the run.
func (c *Coordinator) Process(ctx context.Context, path string, index domain.Index) (*domain.ExtractionRecord, error) {
	identity, err := c.identify(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentRead, err)
	}

	// Cache hit: metadata unchanged and the stored record is readable.
	if entry, ok := index[identity.AbsolutePath]; ok && identity.Matches(entry) {
		record, err := c.store.ReadRecord(ctx, entry.CacheObject)
		if err == nil {
			logger.Debug("Cache hit: %s (%d pages)", identity.AbsolutePath, record.PageCount())
			return record, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache record %s unreadable: %v", entry.CacheObject, err)
		}
		// Fall through to reprocess.
	}

	logger.Info("Extracting: %s", identity.AbsolutePath)

	digest, err := DigestFile(identity.AbsolutePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentRead, err)
	}

	texts := c.extractPages(ctx, identity.AbsolutePath)

	record := &domain.ExtractionRecord{
		AbsolutePath: identity.AbsolutePath,
		Digest:       digest,
		SizeBytes:    identity.SizeBytes,
		ModifiedAt:   identity.ModifiedAt,
		CacheObject:  digest + ".json",
		Pages:        texts,
	}

	c.persist(ctx, record, index)
	return record, nil
}

// identify computes the cheap staleness metadata for a document. No
// hashing happens here.
func (c *Coordinator) identify(path string) (domain.DocumentIdentity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.DocumentIdentity{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return domain.DocumentIdentity{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	return domain.DocumentIdentity{
		AbsolutePath: abs,
		SizeBytes:    info.Size(),
		ModifiedAt:   info.ModTime().Unix(),
	}, nil
}

// extractPages rasterizes the document and recognizes every page.
// Rasterization failure degrades to zero pages so an unreadable document
// is cached once instead of retried every run. Pool failure degrades to a
// sequential collection loop so already-rasterized pages are not lost.
func (c *Coordinator) extractPages(ctx context.Context, path string) []string {
	images, err := c.rasterizer.Rasterize(ctx, path)
	if err != nil {
		logger.Error("Rasterization failed for %s: %v (caching zero pages)", path, err)
		return []string{}
	}

	texts, err := c.pool.RunPages(ctx, images)
	if err != nil {
		logger.Warn("Page pool unavailable: %v (falling back to sequential)", err)
		return c.runPagesSequential(ctx, images)
	}
	return texts
}

// runPagesSequential is the degraded collection strategy used when the
// pool cannot run. Failure semantics per page are identical.
func (c *Coordinator) runPagesSequential(ctx context.Context, images [][]byte) []string {
	texts := make([]string, len(images))
	if c.recognizer == nil {
		logger.Warn("No recognizer configured; recording empty text for %d pages", len(images))
		return texts
	}
	for i, img := range images {
		text, err := c.recognizer.Recognize(ctx, img)
		if err != nil {
			logger.Warn("Page %d recognition failed: %v", i+1, err)
			continue
		}
		texts[i] = text
	}
	return texts
}

// persist writes the record, then the index entry, in that order. A
// failed record write leaves the index untouched so it can never
// reference a missing object; a failed index write leaves an unreferenced
// but readable record behind, which a later run simply rewrites. Either
// failure is reported and absorbed: the in-memory record stays usable for
// the current run.
func (c *Coordinator) persist(ctx context.Context, record *domain.ExtractionRecord, index domain.Index) {
	if err := c.store.WriteRecord(ctx, record.CacheObject, record); err != nil {
		logger.Error("%v: record %s: %v", domain.ErrPersistence, record.CacheObject, err)
		return
	}

	index[record.AbsolutePath] = record.IndexEntry()

	if err := c.store.WriteIndex(ctx, index); err != nil {
		logger.Error("%v: index update for %s: %v", domain.ErrPersistence, record.AbsolutePath, err)
	}
}
