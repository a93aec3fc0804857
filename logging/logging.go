// Package logging sets up slog for the TUI. The terminal belongs to the UI,
// so logs always go to a rotating file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// Options controls where and how logs are written.
type Options struct {
	Path   string
	Level  string // debug, info, warn, error
	Format string // json or text
}

// Init builds the logger, installs it as the slog default and returns it
// with a closer for the underlying file. On failure logs are discarded and
// the error is returned.
func Init(opts Options) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		logger := slog.New(newHandler(opts.Format, io.Discard, handlerOpts))
		slog.SetDefault(logger)
		return logger, nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	logger := slog.New(newHandler(opts.Format, w, handlerOpts))
	slog.SetDefault(logger)
	return logger, w, nil
}

// ParseLevel maps a level name to a slog.Level; unknown names are info.
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

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
