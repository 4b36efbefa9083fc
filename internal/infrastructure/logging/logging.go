// Package logging builds the structured logger shared by harness components.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/younwookim/harness/internal/infrastructure/config"
)

// New creates a logger writing to w, or to stderr when w is nil.
// An unknown level falls back to info.
func New(cfg config.LogConfig, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: cfg.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          cfg.Prefix,
		Level:           level,
	})
	if err != nil && cfg.Level != "" {
		l.Warn("unknown log level, using info", "level", cfg.Level)
	}
	return l
}

// Discard returns a logger that drops every message.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
