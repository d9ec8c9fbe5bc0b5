package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_Production(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, false))

	log.Debug("hidden")
	log.Info("request", "status", 200)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.EqualValues(t, 200, line["status"])
}

func TestNewHandler_Development(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, true))

	log.Debug("visible", "habit_id", "h1")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "habit_id=h1")
}

func TestFanout_WritesToEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(fanout([]slog.Handler{NewHandler(&a, true), NewHandler(&b, false)}))

	log.Warn("cache miss")

	assert.Contains(t, a.String(), "cache miss")
	assert.Contains(t, b.String(), "cache miss")
}
