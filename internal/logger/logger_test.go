package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("garbage"))
}

func TestFileOutputRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.log")

	log := New(
		WithConsole(false),
		WithFile(path),
		WithFileRotation(10, 1, 1, false),
		WithLevel(zapcore.WarnLevel),
	)

	log.Debug("debug line")
	log.Info("info line")
	log.Warn("warn line")
	log.Error("error line", zap.Int("code", 7))
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "WARN")
	assert.Contains(t, text, "ERROR")
	assert.NotContains(t, text, "INFO")
	assert.NotContains(t, text, "DEBUG")
}

func TestNamedLoggerCarriesName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "named.log")

	log := New(WithConsole(false), WithFile(path), WithFileRotation(10, 1, 1, false))
	log.Named("shadow").Info("pass complete")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "shadow"))
}

func TestNopLoggerDiscards(t *testing.T) {
	log := Nop()
	log.Info("dropped")
	log.Error("also dropped")
	assert.NoError(t, log.Sync())
}
