// Package tesseract implements driven.Recognizer with the gosseract
// bindings to the Tesseract OCR engine. Recognition is an external
// collaborator: any engine that turns one page image into text can
// replace this adapter.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.Recognizer = (*Recognizer)(nil)

// Recognizer runs Tesseract on page images. A fresh gosseract client is
// created per call: clients are not safe for concurrent use, and the page
// pool calls Recognize from several workers at once.
type Recognizer struct {
	clientFactory func() *gosseract.Client
	languages     []string
	dpi           int
}

// Option configures the recognizer.
type Option func(*Recognizer)

// WithLanguages sets language hints (e.g. "eng", "deu"). Empty means the
// engine default.
func WithLanguages(langs ...string) Option {
	return func(r *Recognizer) { r.languages = append([]string(nil), langs...) }
}

// WithDPI tells the engine the resolution the pages were rendered at,
// which improves its layout heuristics.
func WithDPI(dpi int) Option {
	return func(r *Recognizer) { r.dpi = dpi }
}

// New creates a Tesseract-backed recognizer.
func New(opts ...Option) *Recognizer {
	r := &Recognizer{clientFactory: gosseract.NewClient}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recognize extracts text from one encoded page image.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(r.languages) > 0 {
		if err := c.SetLanguage(r.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if r.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(r.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
