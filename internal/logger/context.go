package logger

import "context"

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// WithRequestID attaches a request identifier that log emitters pick up.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request identifier stored in ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
