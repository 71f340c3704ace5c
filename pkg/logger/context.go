package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const loggerKey contextKey = "logger"

// FromContext returns the request-scoped logger stored in ctx, falling
// back to the process logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return GetLogger()
	}
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return GetLogger()
}

// WithContext returns a child context carrying the logger.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromEcho returns the per-request logger the request-id middleware put
// in the echo context, falling back to the process logger.
func FromEcho(c echo.Context) *zap.Logger {
	if c == nil {
		return GetLogger()
	}
	if logger, ok := c.Get("logger").(*zap.Logger); ok && logger != nil {
		return logger
	}
	return GetLogger()
}
