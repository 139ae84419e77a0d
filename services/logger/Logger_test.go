package Logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obstacle-detection/config"
)

func TestInit(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	err := Init(config.LogConfig{Level: "warn"}, config.SentryConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	err = Init(config.LogConfig{Level: "loud"}, config.SentryConfig{})
	assert.Error(t, err)
}

func TestNewInputLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.log")

	logger, err := NewInputLogger(path)
	require.NoError(t, err)
	logger.Info().Int("receivingPort", 6060).Msg(`{"type":"ping"}`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"receivingPort":6060`)
	assert.Contains(t, string(data), "ping")
}
