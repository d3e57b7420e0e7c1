package mode

import "time"

// clearTimer is the single pending auto-clear. All methods run with the
// controller lock held; the generation counter makes a fire that raced with
// cancel or re-arm a no-op once it acquires the lock.
type clearTimer struct {
	t   *time.Timer
	gen uint64
}

func (c *clearTimer) arm(d time.Duration, fire func(gen uint64)) {
	c.cancel()
	gen := c.gen
	c.t = time.AfterFunc(d, func() { fire(gen) })
}

func (c *clearTimer) cancel() {
	c.gen++
	if c.t != nil {
		c.t.Stop()
		c.t = nil
	}
}

func (c *clearTimer) pending() bool {
	return c.t != nil
}

// claim reports whether a fire for gen is still current and, if so, marks
// the timer as spent.
func (c *clearTimer) claim(gen uint64) bool {
	if gen != c.gen || c.t == nil {
		return false
	}
	c.t = nil
	return true
}
