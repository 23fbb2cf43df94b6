// Package logger
package logger

import (
	"log/slog"
	"os"

	"keepup/internal/config"
)

// New builds the application slog.Logger from config. Format "json" selects
// the JSON handler, anything else falls back to text.
func New(cfg *config.Config) *slog.Logger {
	var lvl slog.Level

	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
