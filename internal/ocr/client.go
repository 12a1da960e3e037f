// Package ocr talks to the cloud OCR/LLM collaborator: one awaited call
// per uploaded page, retries with linear backoff, cooperative cancellation
// between pages. The core pipeline never sees any of this, it just gets
// raw records.
package ocr

import (
	"context"

	"timecard-service/internal/timecard/model"
)

// Page is one OCR unit: an uploaded image, or a single page cut out of an
// uploaded PDF.
type Page struct {
	Name string
	MIME string
	Data []byte
}

// Client extracts raw records from one page.
type Client interface {
	ExtractPage(ctx context.Context, p Page) ([]model.RawRecord, error)
}
