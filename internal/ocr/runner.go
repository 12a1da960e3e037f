package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"timecard-service/internal/timecard/model"
)

// ErrCanceled reports a cooperative cancellation: the overall run yields
// no partial results once the flag is seen between pages.
var ErrCanceled = errors.New("ocr: processing canceled")

// Runner feeds pages to the client strictly one at a time, each call
// awaited before the next begins. Sequential on purpose: the upstream
// bills per call and rate-limits bursts.
type Runner struct {
	client Client
	log    zerolog.Logger
}

func NewRunner(client Client, log zerolog.Logger) *Runner {
	return &Runner{client: client, log: log}
}

// Run extracts every page and concatenates the raw records. An upstream
// failure (after the client's own retries) aborts the batch; a page whose
// answer cannot be decoded is logged and skipped.
func (r *Runner) Run(ctx context.Context, pages []Page) ([]model.RawRecord, error) {
	var out []model.RawRecord
	for _, p := range pages {
		select {
		case <-ctx.Done():
			return nil, ErrCanceled
		default:
		}

		recs, err := r.client.ExtractPage(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrCanceled
			}
			var derr *decodeError
			if errors.As(err, &derr) {
				r.log.Warn().Str("page", p.Name).Err(err).Msg("undecodable OCR answer, page skipped")
				continue
			}
			return nil, fmt.Errorf("page %s: %w", p.Name, err)
		}
		r.log.Debug().Str("page", p.Name).Int("records", len(recs)).Msg("page extracted")
		out = append(out, recs...)
	}
	return out, nil
}
