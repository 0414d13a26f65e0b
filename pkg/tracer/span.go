package tracer

import (
	"runtime"
	"sync"

	tracepb "github.com/census-instrumentation/opencensus-proto/gen-go/trace/v1"
	"github.com/sirupsen/logrus"
	attr "go.opentelemetry.io/otel/attribute"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/stleox/seetrace/pkg/clock"
	"github.com/stleox/seetrace/pkg/config"
	"github.com/stleox/seetrace/pkg/trace"
)

// timedEvent pairs an event with the monotonic reading taken when it was
// recorded. The wall time is derived at snapshot time by the converter.
type timedEvent struct {
	nanos int64
	event trace.Event
}

// recordingSpan is the live span record. One lock guards every mutable
// field; the lock is never held across a processor callback. Once ended,
// every mutator is a silent no-op.
type recordingSpan struct {
	mu sync.Mutex

	// Immutable after construction.
	context      trace.SpanContext
	parentSpanID trace.SpanID // zero iff root
	kind         trace.SpanKind
	traceConfig  config.TraceConfig
	processor    SpanProcessor
	clock        clock.Clock
	converter    *clock.TimestampConverter
	resource     *trace.Resource
	startNanos   int64

	// Guarded by mu.
	name       string
	attributes *boundedAttributes
	events     *boundedQueue[timedEvent]
	links      *boundedQueue[trace.Link]
	children   uint32
	status     *trace.Status
	endNanos   int64
	ended      bool
}

// startSpan builds and starts a recording span. The processor's OnStart
// runs here, after the span is fully constructed, never from inside the
// constructor path that still holds partial state.
func startSpan(
	sc trace.SpanContext,
	name string,
	kind trace.SpanKind,
	parentSpanID trace.SpanID,
	cfg config.TraceConfig,
	processor SpanProcessor,
	converter *clock.TimestampConverter,
	clk clock.Clock,
	resource *trace.Resource,
	startNanos int64,
	attributes map[string]attr.Value,
	links []trace.Link,
) *recordingSpan {
	if converter == nil {
		converter = clock.Converter(clk)
	}
	s := &recordingSpan{
		context:      sc,
		parentSpanID: parentSpanID,
		kind:         kind,
		traceConfig:  cfg,
		processor:    processor,
		clock:        clk,
		converter:    converter,
		resource:     resource,
		startNanos:   startNanos,
		name:         name,
	}
	if len(attributes) > 0 {
		s.initializedAttributes().PutAll(attributes)
	}
	for _, link := range links {
		s.initializedLinks().Push(link)
	}
	// A span dropped without End leaks the record; make that visible.
	runtime.SetFinalizer(s, (*recordingSpan).finalize)
	processor.OnStart(s)
	return s
}

func (s *recordingSpan) Context() trace.SpanContext {
	return s.context
}

func (s *recordingSpan) IsRecording() bool {
	return true
}

func (s *recordingSpan) SetAttribute(key string, value attr.Value) {
	if key == "" || value.Type() == attr.INVALID {
		logrus.Debug("SeeTrace couldn't record an attribute without a key and a value")
		return
	}
	switch value.Type() {
	case attr.STRING, attr.INT64, attr.FLOAT64, attr.BOOL:
	default:
		logrus.Debugf("SeeTrace couldn't record attribute %q of type %s", key, value.Type())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't call SetAttribute on an ended span")
		return
	}
	s.initializedAttributes().Put(key, value)
}

func (s *recordingSpan) SetAttributes(attributes map[string]attr.Value) {
	for k, v := range attributes {
		s.SetAttribute(k, v)
	}
}

func (s *recordingSpan) AddEvent(event trace.Event) {
	// Stamp at entry so queueing delay never skews the event time.
	nanos := s.clock.NowNanos()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't call AddEvent on an ended span")
		return
	}
	s.initializedEvents().Push(timedEvent{nanos: nanos, event: event})
}

func (s *recordingSpan) AddLink(link trace.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't call AddLink on an ended span")
		return
	}
	s.initializedLinks().Push(link)
}

func (s *recordingSpan) SetStatus(status trace.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't call SetStatus on an ended span")
		return
	}
	s.status = &status
}

func (s *recordingSpan) UpdateName(name string) {
	if name == "" {
		logrus.Debug("SeeTrace couldn't rename a span to the empty name")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't call UpdateName on an ended span")
		return
	}
	s.name = name
}

// addChild is called by the builder when a child of this span starts.
func (s *recordingSpan) addChild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		logrus.Debug("SeeTrace couldn't count a child on an ended span")
		return
	}
	s.children++
}

// End freezes the span and reports it. The processor callback runs after
// the lock is released so a processor may read the span freely.
func (s *recordingSpan) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		logrus.Debug("SeeTrace couldn't call End on an ended span")
		return
	}
	s.endNanos = s.clock.NowNanos()
	s.ended = true
	s.mu.Unlock()
	s.processor.OnEnd(s)
}

func (s *recordingSpan) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *recordingSpan) Kind() trace.SpanKind {
	return s.kind
}

// Status returns the span's status, defaulting to OK when unset.
func (s *recordingSpan) Status() trace.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusWithDefault()
}

// LatencyNanos is end-start for an ended span, now-start for a live one.
func (s *recordingSpan) LatencyNanos() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveEndNanos() - s.startNanos
}

func (s *recordingSpan) timestampConverter() *clock.TimestampConverter {
	return s.converter
}

// ToProto takes a consistent snapshot of the span. Callable at any
// moment: a live span reports its current latency and omits an unset
// status, an ended span reports frozen times and a status defaulting to
// OK.
func (s *recordingSpan) ToProto() *tracepb.Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	tid := s.context.TraceID()
	sid := s.context.SpanID()
	span := &tracepb.Span{
		TraceId:        tid[:],
		SpanId:         sid[:],
		Tracestate:     toProtoTracestate(s.context.TraceState()),
		Name:           &tracepb.TruncatableString{Value: s.name},
		Kind:           toProtoKind(s.kind),
		StartTime:      s.converter.Convert(s.startNanos),
		EndTime:        s.converter.Convert(s.effectiveEndNanos()),
		Resource:       toProtoResource(s.resource),
		ChildSpanCount: wrapperspb.UInt32(s.children),
	}
	if s.parentSpanID.IsValid() {
		pid := s.parentSpanID
		span.ParentSpanId = pid[:]
	}
	if s.attributes != nil {
		span.Attributes = toProtoAttributes(s.attributes.Snapshot(), s.attributes.Dropped())
	}
	if s.events != nil {
		span.TimeEvents = toProtoTimeEvents(s.events.Snapshot(), s.events.Dropped(), s.converter)
	}
	if s.links != nil {
		span.Links = toProtoLinks(s.links.Snapshot(), s.links.Dropped())
	}
	if s.ended {
		span.Status = toProtoStatus(s.statusWithDefault())
	} else if s.status != nil {
		span.Status = toProtoStatus(*s.status)
	}
	return span
}

func (s *recordingSpan) hasEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *recordingSpan) effectiveEndNanos() int64 {
	if s.ended {
		return s.endNanos
	}
	return s.clock.NowNanos()
}

func (s *recordingSpan) statusWithDefault() trace.Status {
	if s.status == nil {
		return trace.StatusOK
	}
	return *s.status
}

func (s *recordingSpan) initializedAttributes() *boundedAttributes {
	if s.attributes == nil {
		s.attributes = newBoundedAttributes(s.traceConfig.MaxNumberOfAttributes)
	}
	return s.attributes
}

func (s *recordingSpan) initializedEvents() *boundedQueue[timedEvent] {
	if s.events == nil {
		s.events = newBoundedQueue[timedEvent](s.traceConfig.MaxNumberOfEvents)
	}
	return s.events
}

func (s *recordingSpan) initializedLinks() *boundedQueue[trace.Link] {
	if s.links == nil {
		s.links = newBoundedQueue[trace.Link](s.traceConfig.MaxNumberOfLinks)
	}
	return s.links
}

func (s *recordingSpan) finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ended {
		logrus.Errorf("SeeTrace span %q was dropped without being ended", s.name)
	}
}
