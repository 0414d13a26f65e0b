package clock

import (
	"testing"
	"time"

	r "github.com/stretchr/testify/require"
)

func TestConverter_AnchorsAtConstruction(t *testing.T) {
	c := NewTest(time.Unix(1000, 0).UTC())
	converter := Converter(c)

	ts := converter.Convert(c.NowNanos())
	r.Equal(t, int64(1000), ts.Seconds)
	r.Equal(t, int32(0), ts.Nanos)

	ts = converter.Convert(c.NowNanos() + time.Second.Nanoseconds() + 500)
	r.Equal(t, int64(1001), ts.Seconds)
	r.Equal(t, int32(500), ts.Nanos)
}

func TestConverter_SharedAnchorPreservesOrdering(t *testing.T) {
	c := NewTest(time.Unix(1000, 0).UTC())
	converter := Converter(c)

	first := c.NowNanos()
	c.Advance(time.Millisecond)
	second := c.NowNanos()

	// a wall-clock step between the readings must not reorder them
	c.SetTime(time.Unix(500, 0).UTC())
	r.Less(t, converter.Convert(first).AsTime(), converter.Convert(second).AsTime())
}

func TestConverter_IndependentAnchorsAgreeOnWallTime(t *testing.T) {
	c := NewTest(time.Unix(1000, 0).UTC())
	early := Converter(c)
	c.Advance(time.Second)
	late := Converter(c)

	nanos := c.NowNanos()
	r.Equal(t, early.Convert(nanos).Seconds, late.Convert(nanos).Seconds)
}
