package logging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/example/newsroom/internal/ctxutil"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// ContextWithRequestID stores the provided request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches the supplied logger with request id and actor from ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	builder := logger.With()
	added := false
	if rid := RequestIDFromContext(ctx); rid != "" {
		builder = builder.Str("request_id", rid)
		added = true
	}
	if actor := ctxutil.ActorIDFromContext(ctx); actor != "" {
		builder = builder.Str("actor", actor)
		added = true
	}
	if !added {
		return logger
	}
	return builder.Logger()
}

// FromContext returns the base logger annotated with the component name and
// enriched with correlation fields from ctx.
func FromContext(ctx context.Context, component string) *zerolog.Logger {
	l := WithContext(ctx, *WithComponent(component))
	return &l
}
