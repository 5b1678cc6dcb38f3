// Package poppler implements driven.Rasterizer by shelling out to
// poppler's pdftoppm. Rasterization is an external collaborator: any
// renderer that yields ordered page images can replace this adapter.
package poppler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pagehound/pagehound-cli/internal/core/domain"
	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// defaultDPI matches the resolution the cache was designed around;
// changing it changes OCR quality, not cache semantics.
const defaultDPI = 300

// Ensure Rasterizer implements the interface.
var _ driven.Rasterizer = (*Rasterizer)(nil)

// Rasterizer renders PDF pages to PNG images via pdftoppm.
type Rasterizer struct {
	binary string
	dpi    int
}

// New creates a poppler rasterizer. binary may be a bare name resolved
// from PATH or an absolute path; empty defaults to "pdftoppm".
// A non-positive dpi defaults to 300.
func New(binary string, dpi int) *Rasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Rasterizer{binary: binary, dpi: dpi}
}

// Rasterize renders every page of the document into PNG bytes, in page
// order. Output goes through a temporary directory that is removed before
// returning.
func (r *Rasterizer) Rasterize(ctx context.Context, path string) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "pagehound-raster-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, r.binary,
		"-r", strconv.Itoa(r.dpi),
		"-png",
		path,
		prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm %s: %v: %s",
			domain.ErrRasterization, path, err, strings.TrimSpace(string(out)))
	}

	pages, err := collectPages(tmpDir)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rasterized %s: %d pages at %d dpi", path, len(pages), r.dpi)
	return pages, nil
}

// collectPages reads the rendered page-N.png files in page-number order.
// pdftoppm zero-pads the page number to the document's width, so the sort
// key is parsed rather than compared lexically.
func collectPages(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading render output: %w", err)
	}

	type renderedPage struct {
		number int
		name   string
	}
	var rendered []renderedPage
	for _, entry := range entries {
		number, ok := pageNumber(entry.Name())
		if !ok {
			continue
		}
		rendered = append(rendered, renderedPage{number: number, name: entry.Name()})
	}
	sort.Slice(rendered, func(i, j int) bool { return rendered[i].number < rendered[j].number })

	pages := make([][]byte, 0, len(rendered))
	for _, page := range rendered {
		data, err := os.ReadFile(filepath.Join(dir, page.name))
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", page.number, err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}

// pageNumber extracts N from "page-N.png".
func pageNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "page-") || !strings.HasSuffix(name, ".png") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".png"))
	if err != nil {
		return 0, false
	}
	return n, true
}
