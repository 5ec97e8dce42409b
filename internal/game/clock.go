package game

// Clock turns consecutive frame timestamps (seconds) into clamped deltas.
type Clock struct {
	last    float64
	started bool

	// Raw is the unclamped (but non-negative) delta of the last Step.
	Raw float64
}

// Step returns the seconds elapsed since the previous call, clamped to
// [0, MaxFrameDelta]. The first call returns 0.
func (c *Clock) Step(now float64) float64 {
	if !c.started {
		c.started = true
		c.last = now
		c.Raw = 0
		return 0
	}
	c.Raw = max(now-c.last, 0)
	c.last = now
	return min(c.Raw, MaxFrameDelta)
}

func (c *Clock) Reset() { c.started = false }
