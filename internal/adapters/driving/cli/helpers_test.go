package cli

import (
	"context"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/services"
)

// --- Mock implementations ---

// fakeExtraction implements driving.ExtractionService over a canned set
// of records keyed by path.
type fakeExtraction struct {
	records    map[string]*domain.ExtractionRecord
	processErr error
}

func (f *fakeExtraction) Process(_ context.Context, path string, _ domain.Index) (*domain.ExtractionRecord, error) {
	if f.processErr != nil {
		return nil, f.processErr
	}
	if record, ok := f.records[path]; ok {
		return record, nil
	}
	return &domain.ExtractionRecord{AbsolutePath: path, Pages: []string{}}, nil
}

func (f *fakeExtraction) LoadIndex(_ context.Context) (domain.Index, error) {
	return domain.Index{}, nil
}

func (f *fakeExtraction) SaveIndex(_ context.Context, _ domain.Index) error {
	return nil
}

// fakeScanner implements driven.CorpusScanner with a fixed path list.
type fakeScanner struct {
	paths []string
	err   error
}

func (f *fakeScanner) ListDocuments(_ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.paths, nil
}

func (f *fakeScanner) Watch(_ context.Context, _ string) (<-chan string, error) {
	changes := make(chan string)
	close(changes)
	return changes, nil
}

// setupTestServices injects fake services so commands run without a real
// cache directory, poppler or tesseract. The returned cleanup restores
// the uninitialized state.
func setupTestServices() func() {
	record := &domain.ExtractionRecord{
		AbsolutePath: "/docs/contract.pdf",
		Digest:       "abc123",
		SizeBytes:    42,
		ModifiedAt:   1700000000,
		CacheObject:  "abc123.json",
		Pages:        []string{"MASTER AGREEMENT\npayment terms: net 30 days"},
	}

	extractionService = &fakeExtraction{
		records: map[string]*domain.ExtractionRecord{record.AbsolutePath: record},
	}
	searchService = services.NewSearcher()
	corpusScanner = &fakeScanner{paths: []string{record.AbsolutePath}}

	return func() {
		extractionService = nil
		searchService = nil
		corpusScanner = nil
		cfg = nil
	}
}
