package tracer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/stleox/seetrace/pkg/clock"
	"github.com/stleox/seetrace/pkg/config"
	"github.com/stleox/seetrace/pkg/trace"
)

// ErrInvalidSpanName rejects builder names that are empty, longer than
// 255 bytes, or not printable ASCII.
var ErrInvalidSpanName = errors.New("seetrace: invalid span name")

const maxSpanNameBytes = 255

// Tracer is the entry point of the data plane: it hands out span
// builders bound to the active config and processor, and owns the
// shared clock, resource and id generator. Safe for concurrent use.
type Tracer struct {
	clock    clock.Clock
	resource *trace.Resource
	idGen    *idGenerator

	// Hot-path state is swapped atomically; readers never take mu.
	activeConfig    atomic.Pointer[config.TraceConfig]
	activeProcessor atomic.Pointer[multiSpanProcessor]

	// mu guards the registered list and shutdown.
	mu         sync.Mutex
	registered []SpanProcessor

	stopped atomic.Bool
}

type Option func(*Tracer)

func WithClock(c clock.Clock) Option {
	return func(t *Tracer) { t.clock = c }
}

func WithResource(r *trace.Resource) Option {
	return func(t *Tracer) { t.resource = r }
}

func WithTraceConfig(cfg config.TraceConfig) Option {
	return func(t *Tracer) { t.activeConfig.Store(&cfg) }
}

func New(opts ...Option) *Tracer {
	t := &Tracer{
		clock:    clock.New(),
		resource: trace.EmptyResource(),
		idGen:    newIDGenerator(),
	}
	cfg := config.Default()
	t.activeConfig.Store(&cfg)
	t.activeProcessor.Store(newMultiSpanProcessor(nil))
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SpanBuilder returns a builder for a span named name. The builder is
// bound to the processor and config active right now. A stopped tracer
// hands out builders that only produce no-op spans.
func (t *Tracer) SpanBuilder(name string) (*SpanBuilder, error) {
	if err := validateSpanName(name); err != nil {
		return nil, err
	}
	return &SpanBuilder{
		name:      name,
		processor: t.activeProcessor.Load(),
		cfg:       *t.activeConfig.Load(),
		resource:  t.resource,
		clock:     t.clock,
		idGen:     t.idGen,
		kind:      trace.SpanKindInternal,
		stopped:   t.stopped.Load(),
	}, nil
}

// CurrentSpan returns the ambient current span, or a no-op span with an
// invalid context when ctx carries none.
func (t *Tracer) CurrentSpan(ctx context.Context) trace.Span {
	if span := trace.SpanFromContext(ctx); span != nil {
		return span
	}
	return trace.NewNoopSpan(trace.SpanContext{})
}

// WithSpan returns a context carrying span as the current span. The
// previous current span is restored by dropping the returned context.
func (t *Tracer) WithSpan(ctx context.Context, span trace.Span) context.Context {
	return trace.ContextWithSpan(ctx, span)
}

// AddSpanProcessor registers p and atomically publishes a new composite
// over the registration order.
func (t *Tracer) AddSpanProcessor(p SpanProcessor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.registered = append(t.registered, p)
	t.activeProcessor.Store(newMultiSpanProcessor(t.registered))
}

func (t *Tracer) ActiveTraceConfig() config.TraceConfig {
	return *t.activeConfig.Load()
}

func (t *Tracer) UpdateActiveTraceConfig(cfg config.TraceConfig) {
	t.activeConfig.Store(&cfg)
}

// Shutdown stops the tracer and forwards shutdown to every registered
// processor, once. Later calls warn and return.
func (t *Tracer) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped.Load() {
		logrus.Warn("SeeTrace couldn't shut down an already-stopped tracer")
		return
	}
	t.activeProcessor.Load().Shutdown()
	t.stopped.Store(true)
}

func validateSpanName(name string) error {
	if name == "" || len(name) > maxSpanNameBytes {
		return ErrInvalidSpanName
	}
	for i := 0; i < len(name); i++ {
		if name[i] < ' ' || name[i] > '~' {
			return ErrInvalidSpanName
		}
	}
	return nil
}
