package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmptyFileIsNop(t *testing.T) {
	logger, err := New("", "debug")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(path, "debug")
	require.NoError(t, err)

	logger.Debug("nickname check", zap.String("candidate", "alice"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	require.NotEmpty(t, line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "nickname check", entry["msg"])
	assert.Equal(t, "alice", entry["candidate"])
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(path, "warn")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "app.log"), "loud")
	assert.Error(t, err)
}
