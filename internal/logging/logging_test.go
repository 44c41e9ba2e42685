package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leengari/tablekit/internal/config"
)

func TestSetupLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := SetupLogger(config.LogConfig{Level: "warn"}, &buf)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "dataset", "resources")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "dataset=resources")
}

func TestSetupLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := SetupLogger(config.LogConfig{Level: "loud"}, &buf)

	logger.Debug("debug line")
	logger.Info("info line")
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(m).With("table_id", "t1").WithGroup("req")
	logger.Info("event", "slice", "sorting")
	logger.Error("failure")

	assert.Equal(t, 2, strings.Count(a.String(), "table_id=t1"))
	assert.Contains(t, a.String(), "req.slice=sorting")
	assert.NotContains(t, b.String(), "event")
	assert.Contains(t, b.String(), "failure")
}
