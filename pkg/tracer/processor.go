package tracer

import (
	tracepb "github.com/census-instrumentation/opencensus-proto/gen-go/trace/v1"
	"github.com/sirupsen/logrus"

	"github.com/stleox/seetrace/pkg/trace"
)

// ReadableSpan is the view a processor gets of a span. The span stays
// live while the application holds it; a processor that needs the data
// past OnEnd must take its own ToProto snapshot.
type ReadableSpan interface {
	Name() string
	Context() trace.SpanContext
	Kind() trace.SpanKind
	LatencyNanos() int64
	ToProto() *tracepb.Span
}

// SpanProcessor consumes span lifecycle callbacks. OnStart runs
// synchronously once a recording span exists; OnEnd runs synchronously
// after End froze the span, outside the span's lock. Implementations
// must be safe for concurrent use.
type SpanProcessor interface {
	OnStart(span ReadableSpan)
	OnEnd(span ReadableSpan)
	Shutdown()
}

// multiSpanProcessor fans a callback out to every registered processor
// in registration order. A panic in one processor is logged and
// swallowed so it never reaches a recording thread.
type multiSpanProcessor struct {
	processors []SpanProcessor
}

func newMultiSpanProcessor(processors []SpanProcessor) *multiSpanProcessor {
	copied := make([]SpanProcessor, len(processors))
	copy(copied, processors)
	return &multiSpanProcessor{processors: copied}
}

func (m *multiSpanProcessor) OnStart(span ReadableSpan) {
	for _, p := range m.processors {
		shielded("OnStart", func() { p.OnStart(span) })
	}
}

func (m *multiSpanProcessor) OnEnd(span ReadableSpan) {
	for _, p := range m.processors {
		shielded("OnEnd", func() { p.OnEnd(span) })
	}
}

func (m *multiSpanProcessor) Shutdown() {
	for _, p := range m.processors {
		shielded("Shutdown", func() { p.Shutdown() })
	}
}

func shielded(op string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Warnf("SeeTrace couldn't run a span processor's %s", op)
		}
	}()
	f()
}
