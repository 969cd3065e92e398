package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging interface handed to the rest of the service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config controls output destination, format and minimum level.
type Config struct {
	Level     string    // debug, info, warn, error
	Format    string    // json (default) or text
	Output    io.Writer // defaults to os.Stderr
	AddSource bool      // include source positions in entries
}

// DefaultConfig is the configuration in effect before any config file
// loads: info-level JSON on stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

// levelNames maps configuration strings onto slog levels.
var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLevel resolves a level name, falling back to info for anything
// unrecognized.
func parseLevel(name string) slog.Level {
	if lvl, ok := levelNames[strings.ToLower(name)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// minLevel is shared by every handler built through New, so SetLevel
// takes effect across all loggers at once.
var minLevel = new(slog.LevelVar)

// SetLevel adjusts the minimum level at runtime. The config watcher
// calls this on log-level changes.
func SetLevel(name string) {
	minLevel.Set(parseLevel(name))
}

// GetLevel reports the current minimum level by name.
func GetLevel() string {
	switch minLevel.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return "info"
	}
}

// slogLogger adapts a slog.Logger to the Logger interface, carrying
// the context its entries are emitted under.
type slogLogger struct {
	base *slog.Logger
	ctx  context.Context
}

// New builds a Logger from cfg. Every attribute passes through the
// redaction filter before it is written.
func New(cfg Config) (Logger, error) {
	minLevel.Set(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		h = slog.NewTextHandler(out, opts)
	default:
		h = slog.NewJSONHandler(out, opts)
	}

	return &slogLogger{base: slog.New(h), ctx: context.Background()}, nil
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.base.DebugContext(l.ctx, msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.base.InfoContext(l.ctx, msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.base.WarnContext(l.ctx, msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.base.ErrorContext(l.ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...), ctx: l.ctx}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{base: l.base, ctx: ctx}
}

// defaultLogger backs the package-level logging functions.
var defaultLogger atomic.Pointer[slogLogger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(l.(*slogLogger))
}

// SetDefault replaces the logger behind the package-level functions.
func SetDefault(l Logger) {
	if sl, ok := l.(*slogLogger); ok {
		defaultLogger.Store(sl)
	}
}

// Default returns the logger behind the package-level functions.
func Default() Logger {
	return defaultLogger.Load()
}

func Debug(msg string, args ...any) { defaultLogger.Load().Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Load().Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Load().Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Load().Error(msg, args...) }
