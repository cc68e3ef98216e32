// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	GlobalLogger = &Logger{Logger: newSlog("info", "development")}
}

// InitLogging reconfigures the global logger from the loaded configuration.
// Production environments log JSON; development gets readable text output.
func InitLogging(level, env string) {
	GlobalLogger = &Logger{Logger: newSlog(level, env)}
}

func newSlog(level, env string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: lvl}
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(&ctxHandler{handler})
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// Context keys for logging
const (
	CorrelationID LogContextKey = "correlation_id"
	OperationKey  LogContextKey = "operation"
)

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// WithOperation returns a new context tagged with the current client operation.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if cid := ExtractCorrelationID(ctx); cid != "" {
		r.AddAttrs(slog.String("correlation_id", cid))
	}
	if op, ok := ctx.Value(OperationKey).(string); ok {
		r.AddAttrs(slog.String("operation", op))
	}
	return h.Handler.Handle(ctx, r)
}

// RequestLogger provides structured logging for outbound API requests.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new RequestLogger.
func NewRequestLogger() *RequestLogger {
	return &RequestLogger{logger: GlobalLogger}
}

// LogRequest logs a completed outbound request.
func (l *RequestLogger) LogRequest(ctx context.Context, method, path string, status int, durationMS int64) {
	l.logger.InfoContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Int64("duration_ms", durationMS),
	)
}

// LogRequestError logs an outbound request that failed before a response arrived.
func (l *RequestLogger) LogRequestError(ctx context.Context, method, path string, err error) {
	l.logger.ErrorContext(ctx, "api request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}
