package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driving"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driving.SearchService = (*Searcher)(nil)

// Searcher scans cached page texts line by line for a keyword or pattern.
// This is a plain linear scan over the extracted corpus; there is no
// inverted index.
type Searcher struct{}

// NewSearcher creates a corpus searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// CompileQuery turns a query into the regexp used for matching. Literal
// queries are escaped; matching is case-insensitive unless requested
// otherwise. The CLI reuses the same regexp for highlighting.
func (s *Searcher) CompileQuery(query string, opts domain.SearchOptions) (*regexp.Regexp, error) {
	pattern := query
	if !opts.Regex {
		pattern = regexp.QuoteMeta(query)
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: compile query: %v", domain.ErrInvalidInput, err)
	}
	return re, nil
}

// Search returns every matching line across the given records, ordered by
// record, then page, then line. Page and line numbers are 1-based.
func (s *Searcher) Search(records []*domain.ExtractionRecord, query string, opts domain.SearchOptions) ([]domain.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.Match{}, nil
	}

	re, err := s.CompileQuery(query, opts)
	if err != nil {
		return nil, err
	}

	logger.Section("Corpus Search")
	logger.Debug("Query: %q (regex=%t, case_sensitive=%t)", query, opts.Regex, opts.CaseSensitive)

	matches := []domain.Match{}
	for _, record := range records {
		for pageIdx, page := range record.Pages {
			for lineIdx, line := range strings.Split(page, "\n") {
				if !re.MatchString(line) {
					continue
				}
				matches = append(matches, domain.Match{
					AbsolutePath: record.AbsolutePath,
					Page:         pageIdx + 1,
					Line:         lineIdx + 1,
					Text:         strings.TrimRight(line, " \t\r"),
				})
				if opts.Limit > 0 && len(matches) >= opts.Limit {
					logger.Debug("Limit %d reached", opts.Limit)
					return matches, nil
				}
			}
		}
	}

	logger.Debug("Matches: %d", len(matches))
	return matches, nil
}
