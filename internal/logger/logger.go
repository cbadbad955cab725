// Package logger
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"horizonx-top/internal/config"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogLogger struct {
	*slog.Logger
}

// New builds the process logger. In TUI mode with no LOG_FILE the output is
// discarded so log lines never land on the dashboard.
func New(cfg *config.Config) Logger {
	return NewWithWriter(cfg, output(cfg))
}

func NewWithWriter(cfg *config.Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &slogLogger{slog.New(handler)}
}

// Nop discards everything.
func Nop() Logger {
	return &slogLogger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func output(cfg *config.Config) io.Writer {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return f
		}
	}

	if cfg.Mode == config.ModeTUI {
		return io.Discard
	}

	return os.Stderr
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
