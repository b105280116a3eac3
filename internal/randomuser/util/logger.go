package util

import (
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func InitLogger() {
	InitLoggerWithLevel(os.Getenv("LOG_LEVEL"))
}

// InitLoggerWithLevel installs a JSON logger on stdout as the slog default.
// Unknown levels fall back to info.
func InitLoggerWithLevel(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func GetLogger() *slog.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

func ParseLevel(level string) slog.Level {
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
