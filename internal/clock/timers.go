// Package clock provides the virtual timeline that drives a scene: one-shot
// and repeating timers plus an explicit per-frame callback scheduler.
//
// Nothing in this package starts goroutines. Time only moves when the owner
// calls Timers.Advance and Frames.Step, so a whole session runs on a single
// goroutine and tests can drive it tick by tick.
package clock

import "time"

// TimerID identifies a scheduled timer. The zero value is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	at       time.Duration // Due time on the virtual timeline
	interval time.Duration // Zero for one-shot timers
	fn       func()
}

// Timers is a virtual-time scheduler for delayed and repeating callbacks.
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending map[TimerID]*timer
}

// NewTimers creates an empty scheduler at time zero.
func NewTimers() *Timers {
	return &Timers{
		pending: make(map[TimerID]*timer),
	}
}

// Now returns the current position of the virtual timeline.
func (t *Timers) Now() time.Duration {
	return t.now
}

// Pending returns the number of scheduled timers.
func (t *Timers) Pending() int {
	return len(t.pending)
}

// After schedules fn to run once, d after the current time.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	return t.add(d, 0, fn)
}

// Every schedules fn to run every interval, first firing one interval from now.
// A non-positive interval is rejected and returns the zero TimerID.
func (t *Timers) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		return 0
	}
	return t.add(interval, interval, fn)
}

func (t *Timers) add(d, interval time.Duration, fn func()) TimerID {
	t.nextID++
	id := t.nextID
	t.pending[id] = &timer{
		id:       id,
		at:       t.now + d,
		interval: interval,
		fn:       fn,
	}
	return id
}

// Cancel removes a scheduled timer. Returns false if it already fired or
// was never scheduled.
func (t *Timers) Cancel(id TimerID) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

// Advance moves the timeline forward by d, firing every timer that falls due
// in order of due time (ties broken by scheduling order). Callbacks may
// schedule or cancel timers; a timer scheduled inside the window fires in
// the same Advance if it becomes due.
func (t *Timers) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := t.now + d

	for {
		next := t.earliestDue(target)
		if next == nil {
			break
		}
		t.now = next.at
		if next.interval > 0 {
			next.at += next.interval
		} else {
			delete(t.pending, next.id)
		}
		next.fn()
	}

	t.now = target
}

// earliestDue finds the timer with the smallest due time not after target.
// Timer counts stay small (a handful per scene), so a linear scan is enough.
func (t *Timers) earliestDue(target time.Duration) *timer {
	var best *timer
	for _, tm := range t.pending {
		if tm.at > target {
			continue
		}
		if best == nil || tm.at < best.at || (tm.at == best.at && tm.id < best.id) {
			best = tm
		}
	}
	return best
}
