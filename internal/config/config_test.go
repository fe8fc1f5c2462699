package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	limits, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxWindowTokens, limits.MaxWindowTokens)
	assert.Equal(t, DefaultMaxWindowCost, limits.MaxWindowCost)
	assert.Equal(t, DefaultBarWidth, limits.BarWidth)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CCTIMELINE_MAX_WINDOW_TOKENS", "1000000")
	t.Setenv("CCTIMELINE_MAX_WINDOW_COST", "42.5")

	limits, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000000, limits.MaxWindowTokens)
	assert.Equal(t, 42.5, limits.MaxWindowCost)
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "cctimeline")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("max_window_tokens: 500\nbar_width: 24\n"), 0o644))

	limits, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500, limits.MaxWindowTokens)
	assert.Equal(t, 24, limits.BarWidth)
	assert.Equal(t, DefaultMaxWindowCost, limits.MaxWindowCost)
}
