package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := New(&Config{
		Level:       level,
		ServiceName: "manifest-service",
		Environment: "test",
		Version:     "0.0.0",
		Output:      buf,
	})
	return logger, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerServiceAttributes(t *testing.T) {
	logger, buf := newCapturedLogger(LevelInfo)

	logger.Info("manifest saved", "manifestId", "m-1")

	entry := decodeLine(t, buf)
	assert.Equal(t, "manifest-service", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "0.0.0", entry["version"])
	assert.Equal(t, "manifest saved", entry["msg"])
	assert.Equal(t, "m-1", entry["manifestId"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newCapturedLogger(LevelError)

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Error("emitted")
	entry := decodeLine(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLoggerWithContextCarriesIDs(t *testing.T) {
	logger, buf := newCapturedLogger(LevelInfo)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	logger.WithContext(ctx).Info("build started")

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry["requestId"])
	assert.Equal(t, "corr-1", entry["correlationId"])
}

func TestLoggerEvent(t *testing.T) {
	logger, buf := newCapturedLogger(LevelInfo)

	ctx := ContextWithCorrelationID(context.Background(), "corr-2")
	logger.Event(ctx, "manifest.built", map[string]any{
		"centerName": "center-1",
		"outputRows": 3,
	})

	entry := decodeLine(t, buf)
	assert.Equal(t, "manifest.built", entry["eventType"])
	assert.Equal(t, "center-1", entry["centerName"])
	assert.Equal(t, float64(3), entry["outputRows"])
	assert.Equal(t, "corr-2", entry["correlationId"])
}

func TestLoggerKafkaPublishFailureIsError(t *testing.T) {
	logger, buf := newCapturedLogger(LevelInfo)

	logger.KafkaPublish(context.Background(), "dcms.manifest.events", "dcms.manifest.built", false, 20*time.Millisecond)

	entry := decodeLine(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "dcms.manifest.events", entry["topic"])
	assert.Equal(t, false, entry["success"])
}

func TestCorrelationIDFromContext(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))

	ctx := ContextWithCorrelationID(context.Background(), "corr-3")
	assert.Equal(t, "corr-3", CorrelationIDFromContext(ctx))
}

func TestDefaultConfigReadsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	config := DefaultConfig("manifest-service")
	assert.Equal(t, LevelDebug, config.Level)
	assert.Equal(t, "manifest-service", config.ServiceName)
}
