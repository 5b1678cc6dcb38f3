package tesseract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Options(t *testing.T) {
	r := New(WithLanguages("eng", "deu"), WithDPI(300))

	assert.Equal(t, []string{"eng", "deu"}, r.languages)
	assert.Equal(t, 300, r.dpi)
}

func TestRecognize_CancelledContext(t *testing.T) {
	r := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Recognize(ctx, []byte("png bytes"))
	assert.ErrorIs(t, err, context.Canceled)
}
