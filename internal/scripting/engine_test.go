package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/aliens/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scriptsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestFallbacksWithoutScripts(t *testing.T) {
	e, err := scripting.NewEngine(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	ctx := scripting.SpawnContext{Frame: 1}
	assert.Equal(t, scripting.DefaultAlienSpawnChance, e.AlienSpawnChance(ctx))
	assert.Equal(t, scripting.DefaultBombSpawnChance, e.BombSpawnChance(ctx))
	assert.Equal(t, scripting.DefaultAlienHitReward, e.AlienHitReward(ctx))
}

func TestScriptsDriveChances(t *testing.T) {
	dir := scriptsDir(t, map[string]string{
		"spawn/chances.lua": `
function alien_spawn_chance(ctx)
  if ctx.aliens >= 3 then return 0 end
  return 0.01 * ctx.frame
end
function bomb_spawn_chance(ctx) return 7 end
`,
		"scoring/reward.lua": `
function alien_hit_reward(ctx) return 10 + math.floor(ctx.score / 100) end
`,
		"spawn/notes.txt": "ignored",
	})
	e, err := scripting.NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.InDelta(t, 0.05, e.AlienSpawnChance(scripting.SpawnContext{Frame: 5}), 1e-9)
	assert.Zero(t, e.AlienSpawnChance(scripting.SpawnContext{Frame: 5, Aliens: 3}))
	assert.Equal(t, 1.0, e.BombSpawnChance(scripting.SpawnContext{}), "clamped")
	assert.Equal(t, 12, e.AlienHitReward(scripting.SpawnContext{Score: 250}))
}

func TestBrokenScripts(t *testing.T) {
	_, err := scripting.NewEngine(scriptsDir(t, map[string]string{"spawn/bad.lua": "function ("}), zap.NewNop())
	assert.Error(t, err)

	dir := scriptsDir(t, map[string]string{
		"spawn/err.lua": `
function alien_spawn_chance(ctx) error("boom") end
function bomb_spawn_chance(ctx) return "often" end
`,
	})
	e, err := scripting.NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, scripting.DefaultAlienSpawnChance, e.AlienSpawnChance(scripting.SpawnContext{}))
	assert.Equal(t, scripting.DefaultBombSpawnChance, e.BombSpawnChance(scripting.SpawnContext{}))
}
