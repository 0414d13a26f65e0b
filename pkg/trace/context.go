package trace

import (
	"context"
)

type spanCtxKey struct{}

// ContextWithSpan returns a context carrying span as the current span.
// Dropping the returned context restores the previous current span, so
// scoped release falls out of lexical scoping.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, spanCtxKey{}, span)
}

// SpanFromContext returns the current span, or nil if the context
// carries none.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanCtxKey{}).(Span)
	return span
}
