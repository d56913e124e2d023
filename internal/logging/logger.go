// Package logging provides the structured logger used by the markup command
// line tool, a thin layer over log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a structured logger. Fields are alternating keys and values.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, err error, msg string, fields ...any)
	Error(ctx context.Context, err error, msg string, fields ...any)

	With(fields ...any) Logger
	WithComponent(component string) Logger
}

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn or error
	Format string // text or json
	Output io.Writer
}

// DefaultConfig returns an info level text logger writing to stderr.
func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "text", Output: os.Stderr}
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// SlogLogger implements Logger on top of a slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a logger from cfg. A nil cfg uses DefaultConfig.
func NewLogger(cfg *Config) (*SlogLogger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "", "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return &SlogLogger{logger: slog.New(handler)}, nil
}

// Nop returns a logger that discards everything.
func Nop() *SlogLogger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

func (l *SlogLogger) Debug(ctx context.Context, msg string, fields ...any) {
	l.logger.Log(ctx, slog.LevelDebug, msg, fields...)
}

func (l *SlogLogger) Info(ctx context.Context, msg string, fields ...any) {
	l.logger.Log(ctx, slog.LevelInfo, msg, fields...)
}

func (l *SlogLogger) Warn(ctx context.Context, err error, msg string, fields ...any) {
	l.logger.Log(ctx, slog.LevelWarn, msg, withError(err, fields)...)
}

func (l *SlogLogger) Error(ctx context.Context, err error, msg string, fields ...any) {
	l.logger.Log(ctx, slog.LevelError, msg, withError(err, fields)...)
}

// With returns a logger that adds fields to every record.
func (l *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: l.logger.With(fields...)}
}

// WithComponent returns a logger tagged with a component name.
func (l *SlogLogger) WithComponent(component string) Logger {
	return l.With("component", component)
}

func withError(err error, fields []any) []any {
	if err == nil {
		return fields
	}
	return append([]any{slog.String("error", err.Error())}, fields...)
}
