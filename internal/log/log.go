// Package log provides the logging infrastructure for the advisor service.
//
// Loggers are plain *slog.Logger values injected via constructors, never
// package globals. Components add their own context with logger.With():
//
//	store := corpus.NewStore(q, embedder, logger.With("component", "corpus"))
//
// Tests use NewNop to silence output, or NewWithWriter with a buffer to
// inspect it.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type alias for *slog.Logger so components can declare the
// dependency without importing log/slog directly.
type Logger = *slog.Logger

// Config defines logger options.
type Config struct {
	// Level is the minimum log level. Default: slog.LevelInfo.
	Level slog.Level

	// JSON switches output to JSON format. Default: text.
	JSON bool
}

// New creates a logger writing to os.Stderr.
// Stderr keeps stdout free for command output (answers, sources).
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewNop creates a logger that discards all output. Test use only.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
