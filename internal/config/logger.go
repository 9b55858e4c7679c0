package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the logger used by the entry points. The level comes from
// LOG_LEVEL and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("unknown log level, using info", "value", GetEnv("LOG_LEVEL", ""))
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// LoadFactsFrom reads the optional fact list named by NEONFIELD_FACTS with
// the given loader. It returns nil when the variable is unset.
func LoadFactsFrom(load func(path string) ([]string, error)) ([]string, error) {
	path := GetEnv("NEONFIELD_FACTS", "")
	if path == "" {
		return nil, nil
	}
	facts, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("facts from %s: %w", path, err)
	}
	return facts, nil
}
