package clock

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// TimestampConverter renders monotonic readings as wall-clock protobuf
// timestamps. It captures one (wall, monotonic) pair at construction and
// offsets every later reading against that anchor, so two spans sharing
// a converter always agree on ordering.
type TimestampConverter struct {
	wall  time.Time
	nanos int64
}

// Converter anchors a new converter at the clock's current readings.
func Converter(c Clock) *TimestampConverter {
	return &TimestampConverter{
		wall:  c.Now(),
		nanos: c.NowNanos(),
	}
}

// Convert maps a monotonic reading onto the wall anchor.
func (tc *TimestampConverter) Convert(nanos int64) *timestamppb.Timestamp {
	return timestamppb.New(tc.wall.Add(time.Duration(nanos - tc.nanos)))
}
