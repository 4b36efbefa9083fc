package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/harness/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	t.Run("writes key value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "info", Prefix: "test"}, &buf)

		l.Info("resource loaded", "name", "font.png")

		out := buf.String()
		assert.Contains(t, out, "test")
		assert.Contains(t, out, "resource loaded")
		assert.Contains(t, out, "name=font.png")
	})

	t.Run("honors the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "warn"}, &buf)

		l.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "loud"}, &buf)

		assert.Contains(t, buf.String(), "unknown log level")
		buf.Reset()
		l.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	assert.NotNil(t, l)
}
