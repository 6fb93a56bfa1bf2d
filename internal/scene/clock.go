package scene

import "time"

// Clock gates the simulation to a fixed rate. It does not catch up: however long
// the gap since the last tick, one tick reports it as a single elapsed span.
type Clock struct {
	Interval time.Duration
	last     time.Time
}

// NewClock returns a clock ticking fps times a second, starting at start.
func NewClock(fps int, start time.Time) *Clock {
	if fps <= 0 {
		fps = 1
	}
	return &Clock{Interval: time.Second / time.Duration(fps), last: start}
}

// Tick reports the seconds since the previous tick and resets the clock once at
// least Interval has passed. A gap of exactly Interval fires: the comparison is >=,
// not >, so an update landing on the interval is not pushed to the next frame.
// Otherwise it returns (0, false) and keeps waiting.
func (c *Clock) Tick(now time.Time) (float32, bool) {
	d := now.Sub(c.last)
	if d < c.Interval {
		return 0, false
	}
	c.last = now
	return float32(d.Seconds()), true
}
