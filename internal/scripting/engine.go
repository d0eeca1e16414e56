package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Fallbacks used when a script is missing or fails.
const (
	DefaultAlienSpawnChance = 0.02
	DefaultBombSpawnChance  = 0.02
	DefaultAlienHitReward   = 10
)

// Engine wraps a single gopher-lua VM for game tuning.
// Single-goroutine access only (input and dispatch phases).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the spawn and scoring scripts
// from the given directory. Missing directories leave the fallbacks active.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"spawn", "scoring"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SpawnContext is the frame state the spawn scripts see.
type SpawnContext struct {
	Frame  int
	Score  int
	Lives  int
	Aliens int
	Bombs  int
}

func (e *Engine) pack(ctx SpawnContext) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("score", lua.LNumber(ctx.Score))
	t.RawSetString("lives", lua.LNumber(ctx.Lives))
	t.RawSetString("aliens", lua.LNumber(ctx.Aliens))
	t.RawSetString("bombs", lua.LNumber(ctx.Bombs))
	return t
}

// AlienSpawnChance calls alien_spawn_chance(ctx); the result is clamped to [0, 1].
func (e *Engine) AlienSpawnChance(ctx SpawnContext) float64 {
	return clamp01(e.callNumber("alien_spawn_chance", DefaultAlienSpawnChance, e.pack(ctx)))
}

// BombSpawnChance calls bomb_spawn_chance(ctx); the result is clamped to [0, 1].
func (e *Engine) BombSpawnChance(ctx SpawnContext) float64 {
	return clamp01(e.callNumber("bomb_spawn_chance", DefaultBombSpawnChance, e.pack(ctx)))
}

// AlienHitReward calls alien_hit_reward(ctx). Negative rewards become zero.
func (e *Engine) AlienHitReward(ctx SpawnContext) int {
	return max(int(e.callNumber("alien_hit_reward", DefaultAlienHitReward, e.pack(ctx))), 0)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func (e *Engine) callNumber(name string, fallback float64, args ...lua.LValue) float64 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return fallback
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name),
			zap.String("type", result.Type().String()))
		return fallback
	}
	return float64(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
