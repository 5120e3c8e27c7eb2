package helpers

import "context"

// TraceIDHeader carries the request trace id in both directions.
const TraceIDHeader = "X-Trace-Id"

type traceKey struct{}

// WithTraceID returns a context carrying id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceIDFromContext returns the trace id set by the trace middleware, if any.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(traceKey{}).(string)
	return id, ok && id != ""
}
