package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obstacle-detection/models"
)

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(`
log:
  level: debug
redis:
  enabled: false
server:
  port: 7070
  keepAliveTimeout: 2.5
boundary:
  position:
    x: 1
    y: 1
  xDim: 4
  yDim: 2
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, float32(2.5), cfg.Server.KeepAliveTimeout)
	assert.Equal(t, models.BoundaryJSON{Position: models.PointJSON{X: 1, Y: 1}, XDim: 4, YDim: 2}, cfg.Boundary)

	// Untouched sections keep their defaults
	assert.Equal(t, Default().Database, cfg.Database)
	assert.Equal(t, "default", cfg.Server.BoundaryName)
}

func TestLoadYAMLEmpty(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLMalformed(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("server: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)

	require.NoError(t, os.WriteFile(path, []byte("server: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
