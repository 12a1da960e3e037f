package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"timecard-service/internal/config"
	"timecard-service/internal/middleware"
	"timecard-service/internal/ocr"
	tcHnd "timecard-service/internal/timecard/handler"
	"timecard-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, ocrClient ocr.Client) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// scans in, reconciled records out
	r.Post("/process", tcHnd.Process(cfg, logger, ocrClient))
	// pipeline without the OCR hop (re-merge after manual edits)
	r.Post("/merge", tcHnd.Merge(cfg, logger))
	// merged records to a downloadable workbook
	r.Post("/export", tcHnd.Export(cfg, logger))

	return r
}
