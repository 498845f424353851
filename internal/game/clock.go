package game

// FrameClock is the simulation's frame counter. It advances once per
// platform tick, paused or not; what pausing changes is that no simulation
// step runs and the paused span is reported on resume so frame-relative
// baselines can be shifted past it.
type FrameClock struct {
	frame    int
	paused   bool
	pausedAt int
}

// Now returns the current frame.
func (c *FrameClock) Now() int {
	return c.frame
}

// Advance moves to the next frame.
func (c *FrameClock) Advance() {
	c.frame++
}

// Paused reports whether the clock is paused.
func (c *FrameClock) Paused() bool {
	return c.paused
}

// Pause marks the current frame as the start of a pause.
// Pausing an already paused clock does nothing.
func (c *FrameClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.frame
}

// Resume ends a pause and returns how many frames elapsed while paused.
// Resuming a running clock returns 0.
func (c *FrameClock) Resume() int {
	if !c.paused {
		return 0
	}
	c.paused = false
	return c.frame - c.pausedAt
}
