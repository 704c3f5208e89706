package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gravity2d/config"
)

func fileConfig(t *testing.T) config.LoggingConfig {
	t.Helper()
	return config.LoggingConfig{
		Level:     "info",
		Encoding:  "json",
		File:      filepath.Join(t.TempDir(), "logs", "gravity.log"),
		MaxSizeMB: 1,
	}
}

func TestOffIsNop(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestWritesToFile(t *testing.T) {
	cfg := fileConfig(t)
	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hello", zap.Int("frame", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"frame":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestRotatesOversizedFile(t *testing.T) {
	cfg := fileConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.File), 0o755))
	require.NoError(t, os.WriteFile(cfg.File, make([]byte, 1<<20+1), 0o644))

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("fresh")
	_ = logger.Sync()

	old, err := os.Stat(cfg.File + ".old")
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20+1), old.Size())

	info, err := os.Stat(cfg.File)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1<<20))
}

func TestSmallFileAppends(t *testing.T) {
	cfg := fileConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.File), 0o755))
	require.NoError(t, os.WriteFile(cfg.File, []byte("previous\n"), 0o644))

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("next")
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous")
	assert.Contains(t, string(data), "next")
	assert.NoFileExists(t, cfg.File+".old")
}

func TestBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}
