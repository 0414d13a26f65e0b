package tracer

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stleox/seetrace/pkg/trace"
)

// idGenerator draws uniformly random span and trace ids. Per-tracer, so
// the lock never contends across tracers.
type idGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newIDGenerator() *idGenerator {
	var seed int64
	if err := binary.Read(crand.Reader, binary.LittleEndian, &seed); err != nil {
		logrus.WithError(err).Warn("SeeTrace couldn't seed the id generator from crypto/rand")
		seed = rand.Int63()
	}
	return &idGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NewTraceID returns a non-zero random 16-byte trace id.
func (g *idGenerator) NewTraceID() trace.TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id trace.TraceID
	for !id.IsValid() {
		_, _ = g.rng.Read(id[:])
	}
	return id
}

// NewSpanID returns a non-zero random 8-byte span id.
func (g *idGenerator) NewSpanID() trace.SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id trace.SpanID
	for !id.IsValid() {
		_, _ = g.rng.Read(id[:])
	}
	return id
}
