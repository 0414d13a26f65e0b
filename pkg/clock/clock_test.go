package clock

import (
	"testing"
	"time"

	r "github.com/stretchr/testify/require"
)

func TestSystemClock_NanosNeverDecrease(t *testing.T) {
	c := New()
	prev := c.NowNanos()
	for i := 0; i < 1000; i++ {
		now := c.NowNanos()
		r.GreaterOrEqual(t, now, prev)
		prev = now
	}
}

func TestSystemClock_TracksWallTime(t *testing.T) {
	c := New()
	wall := c.Now().UnixNano()
	nanos := c.NowNanos()
	r.InDelta(t, wall, nanos, float64(time.Second.Nanoseconds()))
}

func TestTestClock_Advance(t *testing.T) {
	start := time.Unix(1000, 0).UTC()
	c := NewTest(start)
	r.Equal(t, start.UnixNano(), c.NowNanos())

	c.Advance(time.Second)
	r.Equal(t, start.Add(time.Second), c.Now())

	c.AdvanceMillis(500)
	r.Equal(t, start.UnixNano()+1500*time.Millisecond.Nanoseconds(), c.NowNanos())

	c.SetTime(start)
	r.Equal(t, start, c.Now())
}
