package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"timecard-service/internal/config"
	"timecard-service/internal/fileio"
	"timecard-service/internal/ocr"
	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/model"
	tcSvc "timecard-service/internal/timecard/service"
)

// nginx convention for "client closed request"; the body never arrives anyway
const statusClientClosed = 499

// Process accepts uploaded scans plus optional roster/template/pattern
// inputs, runs OCR page by page and then the reconciliation pipeline.
func Process(cfg config.Config, logger zerolog.Logger, client ocr.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		if client == nil {
			httpError(w, "OCR collaborator not configured (set GEMINI_API_KEY)", http.StatusServiceUnavailable)
			return
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			httpError(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		pages, err := collectPages(r, cfg.MaxPDFPages)
		if err != nil {
			httpError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(pages) == 0 {
			httpError(w, "missing files", http.StatusBadRequest)
			return
		}

		opt, err := optionsFromForm(r, cfg)
		if err != nil {
			httpError(w, err.Error(), http.StatusBadRequest)
			return
		}

		raw, err := ocr.NewRunner(client, log).Run(r.Context(), pages)
		if err != nil {
			if errors.Is(err, ocr.ErrCanceled) {
				log.Info().Msg("processing canceled by client")
				w.WriteHeader(statusClientClosed)
				return
			}
			log.Error().Err(err).Msg("ocr failed")
			httpError(w, "OCR failed: "+err.Error(), http.StatusBadGateway)
			return
		}

		res, err := tcSvc.Run(raw, opt)
		if err != nil {
			// the one fatal case: nothing in the batch survived sanitization
			log.Warn().Int("raw", len(raw)).Err(err).Msg("batch rejected")
			httpError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, log, res)
		log.Info().
			Int("pages", len(pages)).
			Int("records", len(res.Records)).
			Int("skipped", res.Skipped).
			Int("unmatched", len(res.Unmatched)).
			Dur("elapsed", time.Since(start)).
			Msg("process done")
	}
}

// mergeRequest drives the pipeline over already-extracted records, no OCR
// hop. The CLI and the UI's re-merge after manual edits both use it.
type mergeRequest struct {
	Records    []model.RawRecord        `json:"records"`
	Roster     []string                 `json:"roster,omitempty"`
	SheetNames []string                 `json:"sheetNames,omitempty"`
	Threshold  float64                  `json:"threshold,omitempty"`
	Patterns   []attendance.WorkPattern `json:"patterns,omitempty"`
	PatternID  string                   `json:"patternId,omitempty"`
	InCol      *int                     `json:"inCol,omitempty"`
	OutCol     *int                     `json:"outCol,omitempty"`
}

func Merge(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)
		defer r.Body.Close()

		var req mergeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		opt := model.Options{
			Roster:     req.Roster,
			SheetNames: req.SheetNames,
			Threshold:  req.Threshold,
			Pattern:    pickPattern(req.Patterns, req.PatternID),
			InCol:      colOrOff(req.InCol),
			OutCol:     colOrOff(req.OutCol),
		}
		if opt.Threshold == 0 {
			opt.Threshold = cfg.Threshold
		}

		res, err := tcSvc.Run(req.Records, opt)
		if err != nil {
			httpError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, log, res)
		log.Info().
			Int("records", len(res.Records)).
			Dur("elapsed", time.Since(start)).
			Msg("merge done")
	}
}

// exportRequest carries merged (possibly hand-corrected) records back for
// workbook generation.
type exportRequest struct {
	Records []model.ResultRecord `json:"records"`
}

func Export(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := reqLogger(logger, r)
		defer r.Body.Close()

		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.Records) == 0 {
			httpError(w, "no records to export", http.StatusBadRequest)
			return
		}

		f, err := fileio.WriteWorkbook(req.Records)
		if err != nil {
			log.Error().Err(err).Msg("workbook build failed")
			httpError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="TimeCards.xlsx"`)
		if _, err := f.WriteTo(w); err != nil {
			log.Error().Err(err).Msg("write workbook")
			return
		}
		log.Info().Int("sheets", len(req.Records)).Msg("export done")
	}
}

// collectPages reads every uploaded file and expands PDFs into per-page
// units.
func collectPages(r *http.Request, maxPDFPages int) ([]ocr.Page, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var pages []ocr.Page
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		expanded, err := ocr.PagesFromUpload(fh.Filename, pageMIME(fh, data), data, maxPDFPages)
		if err != nil {
			return nil, err
		}
		pages = append(pages, expanded...)
	}
	return pages, nil
}

// optionsFromForm assembles pipeline options from the optional roster and
// template uploads plus the scalar form fields.
func optionsFromForm(r *http.Request, cfg config.Config) (model.Options, error) {
	opt := model.Options{
		Threshold: toFloat(r.FormValue("threshold"), cfg.Threshold),
		InCol:     atoi(r.FormValue("in_col"), -1),
		OutCol:    atoi(r.FormValue("out_col"), -1),
	}

	if f, fh, err := r.FormFile("roster"); err == nil {
		defer f.Close()
		roster, err := fileio.ReadRoster(f, fh.Filename, fileio.RosterOptions{
			Sheet:     r.FormValue("roster_sheet"),
			Column:    atoi(r.FormValue("roster_column"), 0),
			HeaderRow: atoi(r.FormValue("roster_header_row"), 0),
		})
		if err != nil {
			return opt, errors.New("failed to read roster: " + err.Error())
		}
		opt.Roster = roster
	}

	if f, _, err := r.FormFile("template"); err == nil {
		defer f.Close()
		names, err := fileio.SheetNames(f)
		if err != nil {
			return opt, errors.New("failed to read template: " + err.Error())
		}
		opt.SheetNames = names
	}

	if pj := r.FormValue("patterns"); pj != "" {
		var patterns []attendance.WorkPattern
		if err := json.Unmarshal([]byte(pj), &patterns); err != nil {
			return opt, errors.New("bad patterns JSON: " + err.Error())
		}
		opt.Pattern = pickPattern(patterns, r.FormValue("pattern_id"))
	}
	return opt, nil
}

func colOrOff(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func reqLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func httpError(w http.ResponseWriter, msg string, code int) {
	http.Error(w, msg, code)
}
