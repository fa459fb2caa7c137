package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, uint32(2048), cfg.Shadow.Resolution)
	assert.Equal(t, float32(40), cfg.Shadow.HalfExtent)
	assert.Equal(t, float32(0.001), cfg.Shadow.Bias)
	assert.Equal(t, float32(3.0), cfg.Shadow.NormalBiasScale)
	assert.Equal(t, 16, cfg.Renderer.InstanceCount)
	assert.Equal(t, 0, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quarry.yaml")

	yaml := `
shadow:
  resolution: 4096
  bias: 0.002
batch:
  workers: 8
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, uint32(4096), cfg.Shadow.Resolution)
	assert.Equal(t, float32(0.002), cfg.Shadow.Bias)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, float32(40), cfg.Shadow.HalfExtent)
	assert.Equal(t, 16, cfg.Renderer.InstanceCount)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shadow: [not a map"), 0o644))

	cfg := Default()
	assert.Error(t, loadFromFile(cfg, path))
}
