package session

import "time"

// FrameClock turns wall-clock ticks into frame deltas in seconds. The first
// tick yields 0. A clock that steps backwards yields a negative delta, which
// the integrator rejects.
type FrameClock struct {
	last    time.Time
	started bool
}

func (c *FrameClock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}

func (c *FrameClock) Reset() {
	c.started = false
	c.last = time.Time{}
}
