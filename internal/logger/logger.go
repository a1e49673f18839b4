// Package logger builds the structured loggers used by the accounts tools.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// New creates a console logger writing to w at the given level ("debug", "info", ...).
// An empty level means "info".
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return zerolog.Nop(), err
		}
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext retrieves the logger from the context, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
