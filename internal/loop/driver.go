// Package loop wires the scenes to a timeline and to a front-end: the Driver
// advances virtual time and frames, the Controller routes input between the
// home and arcade views.
package loop

import (
	"time"

	"github.com/tomz197/neonfield/internal/clock"
)

// Driver owns the timeline a controller runs on.
type Driver struct {
	Timers *clock.Timers
	Frames *clock.Frames
}

// NewDriver creates a driver at time zero with nothing scheduled.
func NewDriver() *Driver {
	return &Driver{
		Timers: clock.NewTimers(),
		Frames: clock.NewFrames(),
	}
}

// Step advances the timeline by delta, firing due timers, then runs every
// frame callback requested during the previous frame.
func (d *Driver) Step(delta time.Duration) int {
	if delta > 0 {
		d.Timers.Advance(delta)
	}
	return d.Frames.Step()
}

// Now returns the current timeline position.
func (d *Driver) Now() time.Duration {
	return d.Timers.Now()
}
