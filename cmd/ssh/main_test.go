package main

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestSessionProfile(t *testing.T) {
	tests := []struct {
		term    string
		environ []string
		want    termenv.Profile
	}{
		{"xterm-256color", nil, termenv.ANSI256},
		{"xterm-256color", []string{"COLORTERM=truecolor"}, termenv.TrueColor},
		{"xterm-direct", nil, termenv.TrueColor},
		{"xterm", nil, termenv.ANSI},
		{"dumb", nil, termenv.Ascii},
	}
	for _, tt := range tests {
		if got := sessionProfile(tt.term, tt.environ); got != tt.want {
			t.Errorf("sessionProfile(%q, %v) = %v, want %v", tt.term, tt.environ, got, tt.want)
		}
	}
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("got %d,%d,%v", w, h, err)
	}
}
