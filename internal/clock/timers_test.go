package clock

import (
	"testing"
	"time"
)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	timers := NewTimers()
	fired := 0
	timers.After(1800*time.Millisecond, func() { fired++ })

	timers.Advance(1799 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early: %d", fired)
	}
	timers.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	timers.Advance(10 * time.Second)
	if fired != 1 {
		t.Fatalf("one-shot fired again: %d", fired)
	}
	if timers.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", timers.Pending())
	}
}

func TestEveryRepeatsAndCatchesUp(t *testing.T) {
	timers := NewTimers()
	fired := 0
	timers.Every(time.Second, func() { fired++ })

	timers.Advance(3500 * time.Millisecond)
	if fired != 3 {
		t.Fatalf("fired = %d after 3.5s, want 3", fired)
	}
	timers.Advance(500 * time.Millisecond)
	if fired != 4 {
		t.Fatalf("fired = %d after 4s, want 4", fired)
	}
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	timers := NewTimers()
	if id := timers.Every(0, func() {}); id != 0 {
		t.Fatalf("Every(0) = %d, want 0", id)
	}
	if timers.Pending() != 0 {
		t.Fatal("zero-interval timer must not be scheduled")
	}
}

func TestCancel(t *testing.T) {
	timers := NewTimers()
	fired := false
	id := timers.After(time.Second, func() { fired = true })

	if !timers.Cancel(id) {
		t.Fatal("Cancel of pending timer returned false")
	}
	if timers.Cancel(id) {
		t.Fatal("second Cancel returned true")
	}
	timers.Advance(2 * time.Second)
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestRepeatingTimerCanCancelItself(t *testing.T) {
	timers := NewTimers()
	fired := 0
	var id TimerID
	id = timers.Every(time.Second, func() {
		fired++
		if fired == 2 {
			timers.Cancel(id)
		}
	})
	timers.Advance(10 * time.Second)
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}
}

func TestAdvanceFiresInDueOrderAndUpdatesNow(t *testing.T) {
	timers := NewTimers()
	var order []string
	var seen []time.Duration
	timers.After(300*time.Millisecond, func() {
		order = append(order, "c")
		seen = append(seen, timers.Now())
	})
	timers.After(100*time.Millisecond, func() {
		order = append(order, "a")
		seen = append(seen, timers.Now())
		// Scheduled from inside the window, still due before the target.
		timers.After(100*time.Millisecond, func() {
			order = append(order, "b")
			seen = append(seen, timers.Now())
		})
	})

	timers.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	wantAt := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	for i := range wantAt {
		if seen[i] != wantAt[i] {
			t.Fatalf("timer %d saw Now() = %v, want %v", i, seen[i], wantAt[i])
		}
	}
	if timers.Now() != time.Second {
		t.Fatalf("Now() = %v, want 1s", timers.Now())
	}
}

func TestTiesFireInSchedulingOrder(t *testing.T) {
	timers := NewTimers()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		timers.After(time.Second, func() { order = append(order, i) })
	}
	timers.Advance(time.Second)
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}
