package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l1jgo/aliens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliens.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
frame_rate = "20ms"
lives = 5

[registry]
verify_each_tick = true

[logging]
format = "json"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Game.FrameRate)
	assert.Equal(t, 5, cfg.Game.Lives)
	assert.Equal(t, 80, cfg.Game.Width, "default kept")
	assert.True(t, cfg.Registry.VerifyEachTick)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/yaml", cfg.Data.Dir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"format":  "[logging]\nformat = \"xml\"\n",
		"lives":   "[game]\nlives = 0\n",
		"profile": "[profile]\nmode = \"block\"\n",
		"syntax":  "[game\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPathFromEnvironment(t *testing.T) {
	t.Setenv("ALIENS_CONFIG", "")
	assert.Equal(t, config.DefaultPath, config.Path())
	t.Setenv("ALIENS_CONFIG", "/tmp/x.toml")
	assert.Equal(t, "/tmp/x.toml", config.Path())
}
