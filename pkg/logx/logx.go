package logx

import (
	"context"
	"log/slog"
	"os"
)

// Logger is a thin wrapper over slog that carries a component name and,
// optionally, the request trace id as structured attributes.
type Logger struct {
	inner *slog.Logger
}

// Init installs the process-wide slog handler. JSON output is used when
// jsonOutput is set (production), a text handler otherwise.
func Init(level slog.Level, jsonOutput bool) {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, options)
	} else {
		handler = slog.NewTextHandler(os.Stdout, options)
	}
	slog.SetDefault(slog.New(handler))
}

// New returns a logger scoped to one component.
func New(component string) *Logger {
	return &Logger{inner: slog.Default().With("component", component)}
}

// WithTrace returns a logger that tags every record with the trace id found
// in ctx under key, if any.
func (l *Logger) WithTrace(ctx context.Context, key any) *Logger {
	if trace, ok := ctx.Value(key).(string); ok && trace != "" {
		return &Logger{inner: l.inner.With("traceId", trace)}
	}
	return l
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, args...)
}
