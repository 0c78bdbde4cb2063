package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	newLogger := addFieldToContext(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &newLogger)
}

func addFieldToContext(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithCollection adds the durable collection key to the logger.
func WithCollection(ctx context.Context, key string) context.Context {
	return WithField(ctx, "collection", key)
}

// WithMovie adds movie context to the logger.
func WithMovie(ctx context.Context, movieID string) context.Context {
	return WithField(ctx, "movie_id", movieID)
}

// WithPage adds the catalog page number to the logger.
func WithPage(ctx context.Context, page int) context.Context {
	return WithField(ctx, "page", page)
}
