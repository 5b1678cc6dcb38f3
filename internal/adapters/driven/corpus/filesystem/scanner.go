// Package filesystem implements driven.CorpusScanner over a local
// directory of PDF files, with optional change watching via fsnotify.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// pdfExtension is the only document type the scanner recognizes.
const pdfExtension = ".pdf"

// Ensure Scanner implements the interface.
var _ driven.CorpusScanner = (*Scanner)(nil)

// Scanner enumerates PDF documents in a source directory.
type Scanner struct{}

// New creates a corpus scanner.
func New() *Scanner {
	return &Scanner{}
}

// ListDocuments returns the absolute paths of all PDFs directly inside
// dir, sorted. The scan is non-recursive. A missing or non-directory
// path is a configuration error.
func (s *Scanner) ListDocuments(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceMissing, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isPDF(entry.Name()) {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", entry.Name(), err)
		}
		paths = append(paths, abs)
	}

	sort.Strings(paths)
	return paths, nil
}

// Watch emits the absolute path of every PDF created or written under dir
// until ctx is cancelled. Removals and renames are ignored: the cache
// keeps stale entries by design, so there is nothing to do for them.
func (s *Scanner) Watch(ctx context.Context, dir string) (<-chan string, error) {
	if _, err := s.ListDocuments(dir); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !isPDF(event.Name) {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					logger.Warn("Watch: resolving %s: %v", event.Name, err)
					continue
				}
				select {
				case changes <- abs:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// isPDF reports whether name carries the recognized document extension.
func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExtension)
}
