package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewJSONLogger builds the process-wide structured logger. With a file path
// it writes size-rotated JSON to that file, keeping the interactive console
// free of log noise; an empty path falls back to stderr.
func NewJSONLogger(service, level, filePath string) *slog.Logger {
	var sink io.Writer = os.Stderr
	if filePath != "" {
		sink = &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}
	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
