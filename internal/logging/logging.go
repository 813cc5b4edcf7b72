// Package logging builds the slog loggers deskshell uses: a colored console
// handler for CLI commands and a rotating JSON file while the desktop owns
// the terminal.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/phsym/console-slog"

	"github.com/1broseidon/deskshell/internal/config"
)

// ParseLevel converts a config log level to an slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewConsole returns a human-readable logger writing to w.
func NewConsole(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(console.NewHandler(w, &console.HandlerOptions{
		Level: level,
	}))
}

// NewFileLogger returns a JSON logger on a rotating file, plus the closer for
// that file. When file logging is disabled the logger discards everything.
func NewFileLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	lc := cfg.GetLoggingConfig()
	if !lc.Enabled {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	f, err := OpenRotatingFile(lc.File, lc.MaxSizeMB, lc.MaxFiles)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}))
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
