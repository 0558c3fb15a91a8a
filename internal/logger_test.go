package internal

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProdEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "prod", "info")

	logger.Info("catalog seeded", "products", 6)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog seeded", entry["msg"])

	ts, ok := entry["time"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}

func TestNewLoggerDevEmitsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dev", "info")

	logger.Info("server started")

	assert.Contains(t, buf.String(), "server started")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dev", "warn")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
