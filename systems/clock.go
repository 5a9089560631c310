package systems

import "time"

// TickClock is a repeating fixed-period gate.
// It is advanced once per rendered frame; gated systems run only on frames where it fired.
type TickClock struct {
	period        time.Duration
	elapsed       time.Duration
	fired         bool
	timesFinished int
	ticks         uint64
}

// NewTickClock creates a clock with the given period.
func NewTickClock(period time.Duration) *TickClock {
	if period <= 0 {
		panic("systems: tick clock period must be positive")
	}
	return &TickClock{period: period}
}

// Advance adds a frame's elapsed time and reports whether the gate fired.
// A long frame that spans several periods still fires only once; the
// remainder carries into the next frame.
func (c *TickClock) Advance(delta time.Duration) bool {
	c.elapsed += delta
	c.fired = false
	c.timesFinished = 0
	if c.elapsed >= c.period {
		c.timesFinished = int(c.elapsed / c.period)
		c.elapsed %= c.period
		c.fired = true
		c.ticks++
	}
	return c.fired
}

// Fired reports whether the last Advance fired the gate.
func (c *TickClock) Fired() bool {
	return c.fired
}

// TimesFinished returns how many whole periods the last Advance covered.
// Values above one mean the frame rate fell below the tick rate.
func (c *TickClock) TimesFinished() int {
	return c.timesFinished
}

// Ticks returns how many times the gate has fired.
func (c *TickClock) Ticks() uint64 {
	return c.ticks
}

// Period returns the gate period.
func (c *TickClock) Period() time.Duration {
	return c.period
}

// Remaining returns the time left until the gate next fires.
func (c *TickClock) Remaining() time.Duration {
	return c.period - c.elapsed
}
