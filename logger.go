package hpxgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/skymap"
)

// Logger wraps slog.Logger with hpxgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithDepth adds a depth field to the logger.
func (l *Logger) WithDepth(depth uint8) *Logger {
	return &Logger{
		Logger: l.Logger.With("depth", depth),
	}
}

// WithOp adds an operation name to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogBatch logs a batch transform.
func (l *Logger) LogBatch(ctx context.Context, op string, n, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"op", op,
			"count", n,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "batch completed",
		"op", op,
		"count", n,
		"workers", workers,
		"elapsed", elapsed,
	)
}

// LogQuery logs a coverage query.
func (l *Logger) LogQuery(ctx context.Context, region string, depth uint8, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"region", region,
			"depth", depth,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"region", region,
		"depth", depth,
		"cells", cells,
	)
}

// LogTransfer logs a buffer handed over to the caller.
func (l *Logger) LogTransfer(ctx context.Context, h buffer.Handle, err error) {
	if err != nil {
		l.WarnContext(ctx, "transfer refused",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "buffer transferred",
		"token", uint64(h.Token),
		"kind", h.Kind.String(),
		"len", h.Len,
		"bytes", h.Bytes(),
	)
}

// LogRelease logs the release of a transferred buffer.
func (l *Logger) LogRelease(ctx context.Context, tok buffer.Token, err error) {
	if err != nil {
		l.ErrorContext(ctx, "release failed",
			"token", uint64(tok),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "buffer released",
		"token", uint64(tok),
	)
}

// LogSkymap logs a skymap read or write.
func (l *Logger) LogSkymap(ctx context.Context, op, name string, s skymap.Skymap, err error) {
	if err != nil {
		l.ErrorContext(ctx, "skymap "+op+" failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "skymap "+op,
		"name", name,
		"kind", s.Kind().String(),
		"depth", s.Depth(),
	)
}
