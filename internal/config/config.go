package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	// OCR collaborator
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OCRTimeout    time.Duration
	OCRRetries    int
	OCRRetryDelay time.Duration
	MaxPDFPages   int

	// roster matching
	Threshold float64
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8083"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "128"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	retries, _ := strconv.Atoi(getenv("OCR_RETRIES", "2"))
	maxPages, _ := strconv.Atoi(getenv("MAX_PDF_PAGES", "30"))
	threshold, _ := strconv.ParseFloat(getenv("MATCH_THRESHOLD", "0.70"), 64)
	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          port,
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFile:       getenv("LOG_FILE", "logs/timecard-service.log"),
		MaxUploadMB:   mb,
		GeminiAPIKey:  getenv("GEMINI_API_KEY", ""),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OCRTimeout:    getdur("OCR_TIMEOUT", 60*time.Second),
		OCRRetries:    retries,
		OCRRetryDelay: getdur("OCR_RETRY_DELAY", 2*time.Second),
		MaxPDFPages:   maxPages,
		Threshold:     threshold,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
