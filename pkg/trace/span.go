package trace

import (
	attr "go.opentelemetry.io/otel/attribute"
)

// Span is the mutation surface handed to instrumented code. Recording
// spans retain mutations until End; no-op spans discard them. All
// implementations are safe for concurrent use.
//
// Every mutator is a silent no-op once End has been called.
type Span interface {
	// Context returns the immutable identifiers of this span.
	Context() SpanContext

	// IsRecording reports whether mutations are retained.
	IsRecording() bool

	SetAttribute(key string, value attr.Value)
	SetAttributes(attributes map[string]attr.Value)
	AddEvent(event Event)
	AddLink(link Link)
	SetStatus(status Status)
	UpdateName(name string)

	// End terminates the span. Only the first call has any effect.
	End()
}
