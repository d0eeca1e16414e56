package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is used when ALIENS_CONFIG is unset.
const DefaultPath = "config/aliens.toml"

type Config struct {
	Game      GameConfig      `toml:"game"`
	Registry  RegistryConfig  `toml:"registry"`
	Audio     AudioConfig     `toml:"audio"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Profile   ProfileConfig   `toml:"profile"`
}

type GameConfig struct {
	FrameRate      time.Duration `toml:"frame_rate"`
	Width          int           `toml:"width"`
	Height         int           `toml:"height"`
	Lives          int           `toml:"lives"`
	LifePenalty    int           `toml:"life_penalty"`
	MaxShots       int           `toml:"max_shots"`
	AlienSpeed     int           `toml:"alien_speed"`
	BombSpeed      int           `toml:"bomb_speed"`
	ShotSpeed      int           `toml:"shot_speed"`
	AFVSpeed       int           `toml:"afv_speed"`
	ExplosionTicks int           `toml:"explosion_ticks"`
	AnimInterval   int           `toml:"anim_interval"`
	Seed           uint64        `toml:"seed"` // 0 = random
}

type RegistryConfig struct {
	RandomIDPrefix bool `toml:"random_id_prefix"`
	VerifyEachTick bool `toml:"verify_each_tick"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // exponent, base 2; 0 = unchanged
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal belongs to the renderer
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "trace"
	Dir  string `toml:"dir"`
}

// Path returns the config location from ALIENS_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv("ALIENS_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	switch {
	case c.Game.FrameRate <= 0:
		return fmt.Errorf("game.frame_rate must be positive")
	case c.Game.Width < 20 || c.Game.Height < 10:
		return fmt.Errorf("game area %dx%d is too small", c.Game.Width, c.Game.Height)
	case c.Game.Lives <= 0:
		return fmt.Errorf("game.lives must be positive")
	case c.Game.ExplosionTicks <= 0:
		return fmt.Errorf("game.explosion_ticks must be positive")
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not json or console", c.Logging.Format)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "trace":
	default:
		return fmt.Errorf("profile.mode %q is not cpu, mem or trace", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			FrameRate:      50 * time.Millisecond,
			Width:          80,
			Height:         30,
			Lives:          3,
			LifePenalty:    1,
			MaxShots:       2,
			AlienSpeed:     1,
			BombSpeed:      1,
			ShotSpeed:      1,
			AFVSpeed:       2,
			ExplosionTicks: 12,
			AnimInterval:   4,
		},
		Registry: RegistryConfig{
			RandomIDPrefix: false,
			VerifyEachTick: false,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0,
		},
		Data: DataConfig{
			Dir: "data/yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "aliens.log",
		},
		Profile: ProfileConfig{
			Mode: "",
			Dir:  ".",
		},
	}
}
