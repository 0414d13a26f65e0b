package tracer

import (
	"context"

	attr "go.opentelemetry.io/otel/attribute"

	"github.com/stleox/seetrace/pkg/clock"
	"github.com/stleox/seetrace/pkg/config"
	"github.com/stleox/seetrace/pkg/trace"
)

// SpanBuilder collects everything a span needs before it exists: parent,
// kind, initial attributes and links, an explicit start time, a sampler
// override. Start runs the sampling decision and produces either a
// recording span or a no-op span.
//
// A builder is bound to the processor and trace-config snapshots taken
// when it was created, so a config rotation mid-build never splits a
// span across two configs. Not safe for concurrent use.
type SpanBuilder struct {
	name      string
	processor SpanProcessor
	cfg       config.TraceConfig
	resource  *trace.Resource
	clock     clock.Clock
	idGen     *idGenerator
	stopped   bool

	parentSpan   trace.Span
	parentCtx    trace.SpanContext
	hasParentCtx bool
	noParent     bool
	kind         trace.SpanKind
	attributes   map[string]attr.Value
	links        []trace.Link
	startNanos   int64
	hasStart     bool
	sampler      config.Sampler
}

// SetParent makes the given live span the parent, overriding the
// ambient current span.
func (b *SpanBuilder) SetParent(span trace.Span) *SpanBuilder {
	b.parentSpan = span
	b.hasParentCtx = false
	b.noParent = false
	return b
}

// SetParentContext sets a remote parent from its propagated context.
func (b *SpanBuilder) SetParentContext(sc trace.SpanContext) *SpanBuilder {
	b.parentCtx = sc
	b.hasParentCtx = true
	b.parentSpan = nil
	b.noParent = false
	return b
}

// SetNoParent forces a root span regardless of the ambient context.
func (b *SpanBuilder) SetNoParent() *SpanBuilder {
	b.noParent = true
	b.parentSpan = nil
	b.hasParentCtx = false
	return b
}

func (b *SpanBuilder) SetSpanKind(kind trace.SpanKind) *SpanBuilder {
	b.kind = kind
	return b
}

func (b *SpanBuilder) SetSampler(sampler config.Sampler) *SpanBuilder {
	b.sampler = sampler
	return b
}

func (b *SpanBuilder) SetAttribute(key string, value attr.Value) *SpanBuilder {
	if b.attributes == nil {
		b.attributes = make(map[string]attr.Value)
	}
	b.attributes[key] = value
	return b
}

func (b *SpanBuilder) SetAttributes(attributes map[string]attr.Value) *SpanBuilder {
	for k, v := range attributes {
		b.SetAttribute(k, v)
	}
	return b
}

func (b *SpanBuilder) AddLink(link trace.Link) *SpanBuilder {
	b.links = append(b.links, link)
	return b
}

// SetStartTimestamp supplies an explicit monotonic start reading instead
// of sampling the clock at Start.
func (b *SpanBuilder) SetStartTimestamp(nanos int64) *SpanBuilder {
	b.startNanos = nanos
	b.hasStart = true
	return b
}

// Start resolves the parent, allocates ids, consults the sampler and
// constructs the span. The ambient current span in ctx is used only when
// no explicit parent was set and SetNoParent was not called.
func (b *SpanBuilder) Start(ctx context.Context) trace.Span {
	if b.stopped {
		return trace.NewNoopSpan(trace.SpanContext{})
	}

	parentSC, hasParent, localParent := b.resolveParent(ctx)

	spanID := b.idGen.NewSpanID()
	var traceID trace.TraceID
	var state trace.TraceState
	if hasParent {
		traceID = parentSC.TraceID()
		state = parentSC.TraceState()
	} else {
		traceID = b.idGen.NewTraceID()
	}

	sampler := b.cfg.Sampler
	if b.sampler != nil {
		sampler = b.sampler
	}
	decision := sampler.ShouldSample(config.SamplingParameters{
		HasParent: hasParent,
		Parent:    parentSC,
		TraceID:   traceID,
		SpanID:    spanID,
		Name:      b.name,
		Links:     b.links,
	})

	var flags trace.TraceFlags
	if hasParent {
		flags = parentSC.TraceFlags()
	}
	flags = flags.WithSampled(decision.Sampled)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		TraceState: state,
	})

	if !decision.Sampled {
		return trace.NewNoopSpan(sc)
	}

	var converter *clock.TimestampConverter
	if localParent != nil {
		// Siblings under one parent must order consistently, so
		// they share the parent's wall anchor.
		converter = localParent.timestampConverter()
	}

	startNanos := b.startNanos
	if !b.hasStart {
		startNanos = b.clock.NowNanos()
	}

	var parentSpanID trace.SpanID
	if hasParent {
		parentSpanID = parentSC.SpanID()
	}

	span := startSpan(
		sc,
		b.name,
		b.kind,
		parentSpanID,
		b.cfg,
		b.processor,
		converter,
		b.clock,
		b.resource,
		startNanos,
		mergedAttributes(b.attributes, decision.Attributes),
		b.links,
	)
	if localParent != nil {
		localParent.addChild()
	}
	return span
}

func (b *SpanBuilder) resolveParent(ctx context.Context) (trace.SpanContext, bool, *recordingSpan) {
	var parent trace.Span
	switch {
	case b.noParent:
		return trace.SpanContext{}, false, nil
	case b.parentSpan != nil:
		parent = b.parentSpan
	case b.hasParentCtx:
		return b.parentCtx, b.parentCtx.IsValid(), nil
	default:
		parent = trace.SpanFromContext(ctx)
	}
	if parent == nil {
		return trace.SpanContext{}, false, nil
	}
	sc := parent.Context()
	local, _ := parent.(*recordingSpan)
	return sc, sc.IsValid(), local
}

func mergedAttributes(initial, sampled map[string]attr.Value) map[string]attr.Value {
	if len(sampled) == 0 {
		return initial
	}
	merged := make(map[string]attr.Value, len(initial)+len(sampled))
	for k, v := range initial {
		merged[k] = v
	}
	for k, v := range sampled {
		merged[k] = v
	}
	return merged
}
