package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Empty(t, cfg.Dataset)
	assert.Equal(t, 1280, cfg.WindowWidth)
	assert.Equal(t, 720, cfg.WindowHeight)
	assert.Equal(t, 60.0, cfg.TickRate)
	assert.Equal(t, 640, cfg.WindowMinWidth)
	assert.Equal(t, 360, cfg.WindowMinHeight)
	assert.Zero(t, cfg.WindowMaxWidth)
	assert.Zero(t, cfg.WindowMaxHeight)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.Profiling)
	assert.Equal(t, 50*time.Millisecond, cfg.LODBasicDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.LODCompleteDelay)
	assert.Equal(t, 3*time.Second, cfg.FocusDuration)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("COSMOS_DATASET", "fixtures/tokens.yaml")
	t.Setenv("COSMOS_WINDOW_WIDTH", "1920")
	t.Setenv("COSMOS_WINDOW_HEIGHT", "1080")
	t.Setenv("COSMOS_TICK_RATE", "144")
	t.Setenv("COSMOS_WINDOW_MIN_WIDTH", "800")
	t.Setenv("COSMOS_WINDOW_MAX_HEIGHT", "1440")
	t.Setenv("COSMOS_LOG_LEVEL", "debug")
	t.Setenv("COSMOS_LOG_PRETTY", "false")
	t.Setenv("COSMOS_PROFILING", "true")
	t.Setenv("COSMOS_EXPLORER_ADDRESS", "addr1qxyz")
	t.Setenv("COSMOS_LOD_BASIC_DELAY", "10ms")
	t.Setenv("COSMOS_LOD_COMPLETE_DELAY", "1s")
	t.Setenv("COSMOS_FOCUS_DURATION", "1500ms")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "fixtures/tokens.yaml", cfg.Dataset)
	assert.Equal(t, 1920, cfg.WindowWidth)
	assert.Equal(t, 1080, cfg.WindowHeight)
	assert.Equal(t, 144.0, cfg.TickRate)
	assert.Equal(t, 800, cfg.WindowMinWidth)
	assert.Equal(t, 1440, cfg.WindowMaxHeight)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, "addr1qxyz", cfg.ExplorerAddress)
	assert.Equal(t, 10*time.Millisecond, cfg.LODBasicDelay)
	assert.Equal(t, time.Second, cfg.LODCompleteDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.FocusDuration)
}

func TestParse_InvalidValues(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("COSMOS_WINDOW_WIDTH", "wide")
		_, err := Parse()
		assert.ErrorContains(t, err, "parse env")
	})

	t.Run("non-positive tick rate", func(t *testing.T) {
		t.Setenv("COSMOS_TICK_RATE", "0")
		_, err := Parse()
		assert.ErrorContains(t, err, "TICK_RATE")
	})

	t.Run("max below min", func(t *testing.T) {
		t.Setenv("COSMOS_WINDOW_MAX_WIDTH", "320")
		_, err := Parse()
		assert.ErrorContains(t, err, "window max size")
	})

	t.Run("complete before basic", func(t *testing.T) {
		t.Setenv("COSMOS_LOD_BASIC_DELAY", "600ms")
		_, err := Parse()
		assert.ErrorContains(t, err, "lod delays")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosmos.env")
	require.NoError(t, os.WriteFile(path, []byte("COSMOS_TICK_RATE=30\nCOSMOS_PROFILING=true\n"), 0o600))

	// godotenv writes into the process environment; register the keys so they are restored.
	t.Setenv("COSMOS_TICK_RATE", "")
	t.Setenv("COSMOS_PROFILING", "")
	require.NoError(t, os.Unsetenv("COSMOS_TICK_RATE"))
	require.NoError(t, os.Unsetenv("COSMOS_PROFILING"))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.TickRate)
	assert.True(t, cfg.Profiling)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
