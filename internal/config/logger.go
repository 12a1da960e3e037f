package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger wires the service logger: human-readable console plus a
// size-rotated file, both at the configured level. Also installs itself as
// the zerolog global so package-level log calls land in the same sinks.
func SetupLogger(cfg Config) zerolog.Logger {
	_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)

	sinks := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339},
		&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB per file
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		},
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
