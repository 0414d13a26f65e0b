package trace

import (
	tr "go.opentelemetry.io/otel/trace"
)

// Identifier and context types are the upstream wire-compatible ones:
// 16-byte TraceID, 8-byte SpanID, a zero value means "invalid".
type (
	TraceID     = tr.TraceID
	SpanID      = tr.SpanID
	TraceFlags  = tr.TraceFlags
	TraceState  = tr.TraceState
	SpanContext = tr.SpanContext
	SpanKind    = tr.SpanKind
)

const (
	SpanKindUnspecified = tr.SpanKindUnspecified
	SpanKindInternal    = tr.SpanKindInternal
	SpanKindServer      = tr.SpanKindServer
	SpanKindClient      = tr.SpanKindClient
	SpanKindProducer    = tr.SpanKindProducer
	SpanKindConsumer    = tr.SpanKindConsumer
)

// FlagsSampled is the trace-flag bit set when the sampler accepts a span.
const FlagsSampled = tr.FlagsSampled

// NewSpanContext builds an immutable SpanContext from its parts.
func NewSpanContext(cfg tr.SpanContextConfig) SpanContext {
	return tr.NewSpanContext(cfg)
}

// SpanContextConfig re-exported for callers assembling contexts by hand.
type SpanContextConfig = tr.SpanContextConfig

// ParseTraceState parses a W3C tracestate header value, preserving the
// order of its members.
func ParseTraceState(s string) (TraceState, error) {
	return tr.ParseTraceState(s)
}
