package bind

import "math"

// completeTimeSentinel initializes a Bind's completion time far below any
// real tick timestamp, so that "time since completion" is huge before
// anything ever completes.
const completeTimeSentinel = -math.MaxFloat64

// A Clock records the timestamps of the two most recent ticks of a host
// loop.
//
// The host loop must call the Advance method once per iteration, before any
// [Bind] is queried, passing its current tick timestamp (typically seconds
// since the loop started). Binds compare their own bookkeeping against the
// clock to detect ticks in which they were not queried.
//
// A Clock is not goroutine-safe. It is owned by the host loop thread, which
// is the only thread that ever advances or reads it. Background tasks never
// touch the clock; they communicate with the host thread exclusively
// through completion channels.
type Clock struct {
	current  float64
	previous float64
}

// Advance shifts the previous tick timestamp and records now as the current
// one. Calling Advance again with the same timestamp is a no-op, so an
// accidental double advance within one tick cannot corrupt the
// previous-tick bookkeeping.
func (c *Clock) Advance(now float64) {
	if now == c.current {
		return
	}
	c.previous = c.current
	c.current = now
}

// Now returns the timestamp of the current tick.
func (c *Clock) Now() float64 { return c.current }

// Previous returns the timestamp of the tick before the current one.
func (c *Clock) Previous() float64 { return c.previous }
