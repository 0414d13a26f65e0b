package tracer

import (
	"context"
	"testing"

	r "github.com/stretchr/testify/require"

	"github.com/stleox/seetrace/pkg/config"
)

func TestMultiSpanProcessor_ForwardsInOrder(t *testing.T) {
	var order []string
	m := newMultiSpanProcessor([]SpanProcessor{
		orderedProcessor{tag: "a", order: &order},
		orderedProcessor{tag: "b", order: &order},
	})

	tr, _, _ := newTestTracer(config.Default())
	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())

	m.OnStart(span.(*recordingSpan))
	m.OnEnd(span.(*recordingSpan))
	r.Equal(t, []string{"a:start", "b:start", "a:end", "b:end"}, order)
	span.End()
}

func TestMultiSpanProcessor_ShutdownForwardsToAll(t *testing.T) {
	first := &recordingProcessor{}
	second := &recordingProcessor{}
	m := newMultiSpanProcessor([]SpanProcessor{first, second})

	m.Shutdown()
	r.Equal(t, 1, first.shutdowns)
	r.Equal(t, 1, second.shutdowns)
}

func TestMultiSpanProcessor_ShieldsPanics(t *testing.T) {
	trailing := &recordingProcessor{}
	m := newMultiSpanProcessor([]SpanProcessor{panickyProcessor{}, trailing})

	tr, _, _ := newTestTracer(config.Default())
	span := mustBuilder(t, tr, spanName).SetNoParent().Start(context.Background())

	r.NotPanics(t, func() {
		m.OnStart(span.(*recordingSpan))
		m.OnEnd(span.(*recordingSpan))
		m.Shutdown()
	})
	r.Equal(t, 1, trailing.startedCount())
	r.Equal(t, 1, trailing.endedCount())
	r.Equal(t, 1, trailing.shutdowns)
	span.End()
}

func TestMultiSpanProcessor_CopiesRegistrationList(t *testing.T) {
	processors := []SpanProcessor{&recordingProcessor{}}
	m := newMultiSpanProcessor(processors)
	processors[0] = panickyProcessor{}

	m.Shutdown()
	// the composite still holds the processor registered at build time
	r.Equal(t, 1, m.processors[0].(*recordingProcessor).shutdowns)
}
