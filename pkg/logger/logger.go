// Package logger provides a small structured logging interface over slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Skip frames: getCaller -> log -> logging method -> actual caller.
const callerSkipFrames = 3

// Logger defines the logging interface.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field              { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Any(key string, val any) Field                { return Field{Key: key, Value: val} }
func Error(err error) Field                        { return Field{Key: "error", Value: err} }

// slogLogger implements Logger using slog.
type slogLogger struct {
	Logger *slog.Logger
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{Logger: l.Logger.WithGroup(name)}
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
	os.Exit(1)
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !l.Logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	attrs = append(attrs, slog.String("source", getCaller()))
	l.Logger.LogAttrs(ctx, level, msg, attrs...)
}

var (
	global   Logger
	levelVar slog.LevelVar
)

type options struct {
	format string
	writer io.Writer
	level  slog.Level
}

// Option configures InitWithOptions.
type Option func(*options)

// WithFormat selects "text" (default) or "json" output.
func WithFormat(format string) Option {
	return func(o *options) { o.format = strings.ToLower(strings.TrimSpace(format)) }
}

// WithWriter sends log lines to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the initial level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// Init initializes the global logger with text output on stdout at info level.
func Init() error {
	return InitWithOptions()
}

// InitWithOptions initializes the global logger.
func InitWithOptions(opts ...Option) error {
	o := options{format: "text", writer: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}
	levelVar.Set(o.level)
	ho := &slog.HandlerOptions{Level: &levelVar}

	var h slog.Handler
	switch o.format {
	case "", "text":
		h = slog.NewTextHandler(o.writer, ho)
	case "json":
		h = slog.NewJSONHandler(o.writer, ho)
	default:
		return fmt.Errorf("unknown log format: %s", o.format)
	}
	global = &slogLogger{Logger: slog.New(h)}
	return nil
}

// getCaller returns the caller location as relative/path/file.go:line.
func getCaller() string {
	_, file, line, ok := runtime.Caller(callerSkipFrames)
	if !ok {
		return "unknown:0"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	rel, err := filepath.Rel(cwd, file)
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return fmt.Sprintf("%s:%d", rel, line)
}

// Get returns the global logger. It panics when Init was never called.
func Get() Logger {
	if global == nil {
		panic("logger not initialized: call logger.Init first")
	}
	return global
}

// Named creates a named logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync flushes buffered log entries. slog does not buffer.
func Sync() error {
	return nil
}

// SetLevel updates the level of the global handler.
func SetLevel(level slog.Level) { levelVar.Set(level) }

// ParseLevel maps a level name to its slog level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
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
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// SetLevelString parses and sets the logging level.
func SetLevelString(level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	SetLevel(l)
	return nil
}
