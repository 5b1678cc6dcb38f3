package driven

import "context"

// Rasterizer renders a PDF document into an ordered sequence of page
// images. Page i of the result is page i+1 of the document. Implemented
// by the poppler adapter; any renderer satisfying the signature can be
// swapped in.
type Rasterizer interface {
	// Rasterize renders every page of the document at the adapter's
	// configured resolution. Encoded image bytes are returned in page
	// order.
	Rasterize(ctx context.Context, path string) ([][]byte, error)
}

// Recognizer extracts text from a single page image. Implemented by the
// tesseract adapter; any OCR engine satisfying the signature can be
// swapped in.
type Recognizer interface {
	// Recognize returns the recognized text for one encoded page image.
	Recognize(ctx context.Context, image []byte) (string, error)
}
