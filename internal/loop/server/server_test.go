package server

import (
	"context"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestRegisterAndStats(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("expected distinct client IDs")
	}
	waitFor(t, func() bool { return s.Stats().Sessions == 2 })

	s.ReportKills(a.ID, 3)
	s.ReportKills(a.ID, 2)
	s.ReportKills(b.ID, 1)
	if got := s.Stats().TotalKills; got != 4 {
		t.Fatalf("expected 4 total kills, got %d", got)
	}

	s.UnregisterClient(a.ID)
	waitFor(t, func() bool { return s.Stats().Sessions == 1 })
	if _, ok := <-a.EventsCh; ok {
		t.Fatalf("expected events channel closed on unregister")
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	h := s.RegisterClient("carol")
	waitFor(t, func() bool { return s.Stats().Sessions == 1 })

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("expected shutdown event, got %v", ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected shutdown event")
	}

	s.UnregisterClient(h.ID)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected shutdown to return once sessions are gone")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.RegisterClient("dave")
	waitFor(t, func() bool { return s.Stats().Sessions == 1 })

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if time.Since(start) < 300*time.Millisecond {
		t.Fatalf("expected shutdown to wait for the timeout")
	}
}

func TestLocalHub(t *testing.T) {
	l := NewLocal()
	h := l.RegisterClient("me")
	l.ReportKills(h.ID, 5)
	if st := l.Stats(); st.Sessions != 1 || st.TotalKills != 5 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	h := s.RegisterClient("carol")
	waitFor(t, func() bool { return s.Stats().Sessions == 1 })
	s.UnregisterClient(h.ID)
	waitFor(t, func() bool { return s.Stats().Sessions == 0 })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
