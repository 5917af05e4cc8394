package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_WritesServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{App: "copilot", Version: "v1", Env: "test", Level: "info"})

	log.Debug("hidden")
	log.Info("refreshed", "snapshot_id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "refreshed")
	assert.Contains(t, out, `"app":"copilot"`)
	assert.Contains(t, out, `"snapshot_id":"abc"`)
}

func TestNew_ConciseKeepsMessageAndLevel(t *testing.T) {
	for _, concise := range []bool{true, false} {
		var buf bytes.Buffer
		log := New(&buf, Options{App: "copilot", Env: "test", Level: "warn", Concise: concise})

		log.Info("hidden")
		log.Warn("refresh canceled", "date", "2025-11-20")

		out := buf.String()
		assert.NotContains(t, out, "hidden", "concise=%v", concise)
		assert.Contains(t, out, "refresh canceled", "concise=%v", concise)
		assert.Contains(t, out, `"date":"2025-11-20"`, "concise=%v", concise)
	}
}
