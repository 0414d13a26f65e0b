package trace

import (
	attr "go.opentelemetry.io/otel/attribute"
)

// Event is something that happened at a point in a span's lifetime.
// The wall time is attached by the span at record time.
type Event struct {
	Name       string
	Attributes map[string]attr.Value
}

// NewEvent builds an event without attributes.
func NewEvent(name string) Event {
	return Event{Name: name}
}

// Link points at a span in this or another trace.
type Link struct {
	SpanContext SpanContext
	Attributes  map[string]attr.Value
}

// NewLink builds a link without attributes.
func NewLink(sc SpanContext) Link {
	return Link{SpanContext: sc}
}
