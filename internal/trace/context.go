package trace

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID attaches a request/operation correlation ID to ctx. The ID
// is surfaced by [Begin] and [Op.End] as a "request_id" log attribute.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithNewRequestID attaches a freshly generated correlation ID to ctx and
// returns both the derived context and the ID, so callers can thread it
// through to nested operations or error messages.
func WithNewRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// RequestIDFrom extracts the request ID previously attached via
// [WithRequestID], if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
