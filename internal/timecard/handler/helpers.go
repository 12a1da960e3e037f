package handler

import (
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/utils"
)

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// toFloat tolerates full-width input; forms arrive from Japanese keyboards.
func toFloat(s string, def float64) float64 {
	f, ok := utils.ParseFloatJP(s)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// pageMIME resolves the upload's media type: declared part header first,
// extension second, content sniffing as the last resort.
func pageMIME(h *multipart.FileHeader, data []byte) string {
	if ct := h.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(h.Filename)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return http.DetectContentType(data)
}

// pickPattern resolves the selected work pattern: by id when given,
// otherwise the first defined one.
func pickPattern(patterns []attendance.WorkPattern, id string) *attendance.WorkPattern {
	if len(patterns) == 0 {
		return nil
	}
	if id == "" {
		return &patterns[0]
	}
	for i := range patterns {
		if patterns[i].ID == id {
			return &patterns[i]
		}
	}
	return nil
}
