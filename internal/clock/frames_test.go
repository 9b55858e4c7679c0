package clock

import "testing"

func TestStepRunsOnlyPreviouslyRequestedFrames(t *testing.T) {
	frames := NewFrames()
	ticks := 0
	var loop func()
	loop = func() {
		ticks++
		frames.RequestFrame(loop)
	}
	frames.RequestFrame(loop)

	for i := 0; i < 10; i++ {
		if ran := frames.Step(); ran != 1 {
			t.Fatalf("step %d ran %d callbacks, want 1", i, ran)
		}
	}
	if ticks != 10 {
		t.Fatalf("ticks = %d, want 10", ticks)
	}
	if frames.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", frames.Pending())
	}
}

func TestCancelFrame(t *testing.T) {
	frames := NewFrames()
	ran := false
	id := frames.RequestFrame(func() { ran = true })
	frames.CancelFrame(id)
	frames.Step()
	if ran {
		t.Fatal("cancelled frame ran")
	}
	if frames.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", frames.Pending())
	}

	// Cancelling stale or zero IDs is harmless.
	frames.CancelFrame(id)
	frames.CancelFrame(0)
}

func TestCancelFrameDuringStep(t *testing.T) {
	frames := NewFrames()
	secondRan := false
	var second FrameID
	frames.RequestFrame(func() { frames.CancelFrame(second) })
	second = frames.RequestFrame(func() { secondRan = true })

	if ran := frames.Step(); ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	if secondRan {
		t.Fatal("frame cancelled mid-step still ran")
	}
}
