package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := NewLogger(&bytes.Buffer{}, "test").GetLevel(); got != log.DebugLevel {
		t.Fatalf("expected debug level, got %v", got)
	}

	t.Setenv("LOG_LEVEL", "loud")
	var buf bytes.Buffer
	if got := NewLogger(&buf, "test").GetLevel(); got != log.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Fatalf("expected a warning about the bad level, got %q", buf.String())
	}
}

func TestLoadFactsFrom(t *testing.T) {
	t.Setenv("NEONFIELD_FACTS", "")
	facts, err := LoadFactsFrom(func(string) ([]string, error) {
		t.Fatal("loader called without a path")
		return nil, nil
	})
	if err != nil || facts != nil {
		t.Fatalf("expected nothing when unset, got %v %v", facts, err)
	}

	t.Setenv("NEONFIELD_FACTS", "/tmp/facts.txt")
	facts, err = LoadFactsFrom(func(path string) ([]string, error) {
		return []string{path}, nil
	})
	if err != nil || len(facts) != 1 || facts[0] != "/tmp/facts.txt" {
		t.Fatalf("unexpected result %v %v", facts, err)
	}

	boom := errors.New("boom")
	_, err = LoadFactsFrom(func(string) ([]string, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
