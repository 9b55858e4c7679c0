package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("NEONFIELD_TEST_STR", "value")
	if got := GetEnv("NEONFIELD_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := GetEnv("NEONFIELD_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("NEONFIELD_TEST_INT", "42")
	t.Setenv("NEONFIELD_TEST_BAD", "forty")
	if got := GetEnvInt("NEONFIELD_TEST_INT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := GetEnvInt("NEONFIELD_TEST_BAD", 1); got != 1 {
		t.Fatalf("expected fallback for bad value, got %d", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("NEONFIELD_TEST_DUR", "1m30s")
	if got := GetEnvDuration("NEONFIELD_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	if got := GetEnvDuration("NEONFIELD_TEST_UNSET", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("NEONFIELD_TEST_DOTENV=loaded\nNEONFIELD_TEST_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEONFIELD_TEST_KEEP", "env")
	t.Cleanup(func() { os.Unsetenv("NEONFIELD_TEST_DOTENV") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("NEONFIELD_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected loaded, got %q", got)
	}
	if got := os.Getenv("NEONFIELD_TEST_KEEP"); got != "env" {
		t.Fatalf("expected existing variable kept, got %q", got)
	}
}
