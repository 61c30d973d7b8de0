package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "debug", Format: "json", ServiceName: "n3xa", Output: &buf})

	ctx := WithCorrelationID(context.Background(), "cid-123")
	log.WithFields(map[string]interface{}{"component": "chat"}).
		Error(ctx, "save failed", errors.New("boom"), map[string]interface{}{"ticket_id": "t1"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "save failed", line["msg"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "n3xa", line["service"])
	assert.Equal(t, "chat", line["component"])
	assert.Equal(t, "t1", line["ticket_id"])
	assert.Equal(t, "cid-123", line["correlation_id"])
	assert.Equal(t, "boom", line["error"])
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestStructuredLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewStructuredLogger(LoggerConfig{Level: "warn", Format: "json", Output: &buf})

	log.Info(context.Background(), "hidden", nil)
	log.Debug(context.Background(), "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestStructuredLogger_WithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewStructuredLogger(LoggerConfig{Level: "info", Format: "json", Output: &buf})
	_ = base.WithFields(map[string]interface{}{"child": true})

	base.Info(context.Background(), "parent", nil)
	assert.NotContains(t, buf.String(), "child")
}

func TestCorrelationID_Missing(t *testing.T) {
	assert.Equal(t, "", CorrelationID(context.Background()))
}
