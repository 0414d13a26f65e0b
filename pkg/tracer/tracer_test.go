package tracer

import (
	"context"
	"strings"
	"testing"

	r "github.com/stretchr/testify/require"

	"github.com/stleox/seetrace/pkg/config"
)

func TestTracer_RejectsInvalidSpanNames(t *testing.T) {
	tr, _, _ := newTestTracer(config.Default())

	tests := []struct {
		name string
		arg  string
	}{
		{"empty", ""},
		{"over-length", strings.Repeat("x", 256)},
		{"non-ascii", "läuft"},
		{"control", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.SpanBuilder(tt.arg)
			r.ErrorIs(t, err, ErrInvalidSpanName)
		})
	}

	_, err := tr.SpanBuilder(strings.Repeat("x", 255))
	r.NoError(t, err)
}

func TestTracer_ProcessorsRunInRegistrationOrder(t *testing.T) {
	tr, _, _ := newTestTracer(config.Default())
	var order []string
	tr.AddSpanProcessor(orderedProcessor{tag: "second", order: &order})
	tr.AddSpanProcessor(orderedProcessor{tag: "third", order: &order})

	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())
	span.End()

	// newTestTracer registered the recording processor first
	r.Equal(t, []string{"second:start", "third:start", "second:end", "third:end"}, order)
}

func TestTracer_ProcessorPanicDoesNotPropagate(t *testing.T) {
	tr, _, p := newTestTracer(config.Default())
	tr.AddSpanProcessor(panickyProcessor{})
	trailing := &recordingProcessor{}
	tr.AddSpanProcessor(trailing)

	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())
	span.End()

	r.Equal(t, 1, p.endedCount())
	r.Equal(t, 1, trailing.endedCount())
}

func TestTracer_ShutdownIsIdempotent(t *testing.T) {
	tr, _, p := newTestTracer(config.Default())
	tr.Shutdown()
	tr.Shutdown()
	r.Equal(t, 1, p.shutdowns)
}

func TestTracer_StoppedTracerYieldsNoopSpans(t *testing.T) {
	tr, _, p := newTestTracer(config.Default())
	tr.Shutdown()

	b, err := tr.SpanBuilder(spanName)
	r.NoError(t, err)
	span := b.Start(context.Background())
	r.False(t, span.IsRecording())
	span.End()
	r.Equal(t, 0, p.startedCount())
	r.Equal(t, 0, p.endedCount())
}

func TestTracer_BuilderKeepsConfigSnapshot(t *testing.T) {
	tr, _, _ := newTestTracer(config.Default())
	b := mustBuilder(t, tr, spanName)

	updated := config.Default()
	updated.MaxNumberOfAttributes = 1
	tr.UpdateActiveTraceConfig(updated)

	r.Equal(t, 1, tr.ActiveTraceConfig().MaxNumberOfAttributes)
	r.Equal(t, config.DefaultMaxNumberOfAttributes, b.cfg.MaxNumberOfAttributes)
}

func TestTracer_CurrentSpanRoundTrip(t *testing.T) {
	tr, _, _ := newTestTracer(config.Default())

	// no ambient span: a no-op span with an invalid context
	current := tr.CurrentSpan(context.Background())
	r.False(t, current.IsRecording())
	r.False(t, current.Context().IsValid())

	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())
	ctx := tr.WithSpan(context.Background(), span)
	r.Equal(t, span, tr.CurrentSpan(ctx))
	span.End()
}

func TestTracer_LateProcessorMissesEarlierSpans(t *testing.T) {
	tr, _, _ := newTestTracer(config.Default())
	early := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())

	late := &recordingProcessor{}
	tr.AddSpanProcessor(late)
	// the early span keeps the composite it was started under
	early.End()
	r.Equal(t, 0, late.startedCount())
	r.Equal(t, 0, late.endedCount())

	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())
	span.End()
	r.Equal(t, 1, late.startedCount())
	r.Equal(t, 1, late.endedCount())
}

type orderedProcessor struct {
	tag   string
	order *[]string
}

func (p orderedProcessor) OnStart(ReadableSpan) { *p.order = append(*p.order, p.tag+":start") }
func (p orderedProcessor) OnEnd(ReadableSpan)   { *p.order = append(*p.order, p.tag+":end") }
func (p orderedProcessor) Shutdown()            {}

type panickyProcessor struct{}

func (panickyProcessor) OnStart(ReadableSpan) { panic("onstart") }
func (panickyProcessor) OnEnd(ReadableSpan)   { panic("onend") }
func (panickyProcessor) Shutdown()            { panic("shutdown") }
