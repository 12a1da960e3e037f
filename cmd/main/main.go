package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "net/http/pprof"

	"timecard-service/internal/config"
	"timecard-service/internal/ocr"
	serverhttp "timecard-service/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	var ocrClient ocr.Client
	if c, err := ocr.NewGemini(ocr.Options{
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		APIKey:     cfg.GeminiAPIKey,
		Timeout:    cfg.OCRTimeout,
		Retries:    cfg.OCRRetries,
		RetryDelay: cfg.OCRRetryDelay,
	}); err != nil {
		logger.Warn().Err(err).Msg("OCR disabled; /process will answer 503")
	} else {
		ocrClient = c
	}

	r := serverhttp.NewRouter(cfg, logger, ocrClient)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
