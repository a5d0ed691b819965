// Package logging builds the process-wide slog logger.
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
	FormatText = "text"
	FormatJSON = "json"

	OutputStderr = "stderr"
	OutputFile   = "file"
)

type Config struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLogger returns a logger writing to stderr, or to a rotated file
// when Output is "file".
func NewLogger(cfg Config) *slog.Logger {
	var w io.Writer
	switch cfg.Output {
	case OutputFile:
		w = newRotatingWriter(cfg)
	case OutputStderr, "":
		w = os.Stderr
	default:
		fmt.Fprintf(os.Stderr, "WARNING: unknown log output %q, falling back to stderr\n", cfg.Output)
		w = os.Stderr
	}
	return NewLoggerWithWriter(cfg, w)
}

// NewLoggerWithWriter is NewLogger with an explicit sink.
func NewLoggerWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, FormatJSON) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func newRotatingWriter(cfg Config) io.Writer {
	if cfg.FilePath == "" {
		fmt.Fprintln(os.Stderr, "WARNING: log output=file but no file path, falling back to stderr")
		return os.Stderr
	}
	if dir := filepath.Dir(cfg.FilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot create log dir %q: %v, falling back to stderr\n", dir, err)
			return os.Stderr
		}
	}
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// ParseLevel maps debug/info/warn/error to slog levels; anything else is info.
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
