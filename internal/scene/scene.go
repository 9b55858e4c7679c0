// Package scene holds the two simulations: the idle field that drifts behind
// the home view and the timed arcade run. Each scene owns all of its state
// and is driven by an Env, so tests can step it frame by frame.
package scene

import (
	"math/rand"
	"time"

	"github.com/tomz197/neonfield/internal/clock"
)

// Timers schedules delayed and repeating callbacks on the scene timeline.
type Timers interface {
	After(d time.Duration, fn func()) clock.TimerID
	Every(interval time.Duration, fn func()) clock.TimerID
	Cancel(id clock.TimerID) bool
	Now() time.Duration
}

// Frames runs a callback on the next frame.
type Frames interface {
	RequestFrame(fn func()) clock.FrameID
	CancelFrame(id clock.FrameID)
}

// Env is everything a scene needs from its host.
type Env struct {
	Timers Timers
	Frames Frames
	Rand   *rand.Rand
	Events chan<- Event // Optional; sends never block
}

// EventType identifies a scene event.
type EventType int

const (
	EventKill EventType = iota
	EventArcadeStarted
	EventArcadeEnded
	EventLifeLost
)

// Event is emitted by scenes for the host to react to (notifications, logs).
type Event struct {
	Type   EventType
	Kills  int    // EventKill: running kill count
	Fact   string // EventKill: fact to show, may be empty
	Result State  // EventArcadeEnded: final state
	Lives  int    // EventLifeLost: lives remaining
	Hits   int    // EventArcadeEnded: hits scored
}

func (e Env) emit(ev Event) {
	if e.Events == nil {
		return
	}
	select {
	case e.Events <- ev:
	default:
		// Channel full, host is behind; drop
	}
}
