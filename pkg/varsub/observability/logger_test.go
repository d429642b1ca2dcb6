package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a debug-level JSON logger and its output buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// lastRecord decodes the last JSON log line in buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var data map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &data))
	return data
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds call_id", func(t *testing.T) {
		logger, buf := captureLogger()
		enriched := EnrichLogger(logger, "call-123")
		enriched.Info("working")

		data := lastRecord(t, buf)
		assert.Equal(t, "call-123", data["call_id"])
		assert.Equal(t, "working", data["msg"])
	})

	t.Run("nil logger", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "call-123"))
	})
}

func TestLogResolveStart(t *testing.T) {
	logger, buf := captureLogger()
	LogResolveStart(logger, "call-123")

	data := lastRecord(t, buf)
	assert.Equal(t, "resolve starting", data["msg"])
	assert.Equal(t, "call-123", data["call_id"])
	assert.Equal(t, "DEBUG", data["level"])

	// Nil logger must not panic.
	LogResolveStart(nil, "call-123")
}

func TestLogResolveComplete(t *testing.T) {
	logger, buf := captureLogger()
	LogResolveComplete(logger, "call-123", 12.0, 3, 1)

	data := lastRecord(t, buf)
	assert.Equal(t, "resolve completed", data["msg"])
	assert.Equal(t, float64(12), data["duration_ms"])
	assert.Equal(t, float64(3), data["lookups"])
	assert.Equal(t, float64(1), data["failures"])

	LogResolveComplete(nil, "call-123", 12.0, 3, 1)
}

func TestLogLookupError(t *testing.T) {
	logger, buf := captureLogger()
	LogLookupError(logger, "region", errors.New("backend down"))

	data := lastRecord(t, buf)
	assert.Equal(t, "variable lookup failed", data["msg"])
	assert.Equal(t, "WARN", data["level"])
	assert.Equal(t, "region", data["variable"])
	assert.Equal(t, "backend down", data["error"])

	LogLookupError(nil, "region", errors.New("backend down"))
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	elapsed := done()

	assert.GreaterOrEqual(t, elapsed, float64(0))
}
