package tracer

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sirupsen/logrus"
	attr "go.opentelemetry.io/otel/attribute"
)

// boundedAttributes is a capacity-capped attribute map with access-order
// eviction: re-assigning a key refreshes its recency, and inserting past
// the cap discards the least-recently-accessed entry. A running total of
// insertions backs the dropped count.
//
// Instances are single-owner (one span each) and always used under the
// span's lock, so the non-synchronized LRU is enough.
type boundedAttributes struct {
	lru           *simplelru.LRU[string, attr.Value]
	totalRecorded uint32
}

func newBoundedAttributes(capacity int) *boundedAttributes {
	lru, err := simplelru.NewLRU[string, attr.Value](capacity, nil)
	if err != nil {
		// capacity comes from TraceConfig, which never carries a
		// non-positive cap; fall back rather than fail recording.
		logrus.WithError(err).Warn("SeeTrace couldn't size the attribute table, using 1")
		lru, _ = simplelru.NewLRU[string, attr.Value](1, nil)
	}
	return &boundedAttributes{lru: lru}
}

// Put inserts or updates a key. The insertion total grows by one whether
// or not the key existed.
func (b *boundedAttributes) Put(key string, value attr.Value) {
	b.totalRecorded++
	b.lru.Add(key, value)
}

func (b *boundedAttributes) PutAll(attributes map[string]attr.Value) {
	for k, v := range attributes {
		b.Put(k, v)
	}
}

func (b *boundedAttributes) Len() int {
	return b.lru.Len()
}

func (b *boundedAttributes) Dropped() uint32 {
	return b.totalRecorded - uint32(b.lru.Len())
}

// Snapshot returns the retained entries, least-recently-accessed first.
func (b *boundedAttributes) Snapshot() []attr.KeyValue {
	keys := b.lru.Keys()
	out := make([]attr.KeyValue, 0, len(keys))
	for _, k := range keys {
		if v, ok := b.lru.Peek(k); ok {
			out = append(out, attr.KeyValue{Key: attr.Key(k), Value: v})
		}
	}
	return out
}
