package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/aliens/internal/audio"
	"github.com/l1jgo/aliens/internal/component"
	"github.com/l1jgo/aliens/internal/config"
	"github.com/l1jgo/aliens/internal/core/ecs"
	"github.com/l1jgo/aliens/internal/data"
	"github.com/l1jgo/aliens/internal/game"
	"github.com/l1jgo/aliens/internal/scripting"
	"github.com/l1jgo/aliens/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        The Illustrious Aliens Game        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       entity registry demo · v0.1.0       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-component.StringWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-component.StringWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printWarn(msg string) {
	fmt.Printf("  \033[33m!\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger (the terminal belongs to the renderer, so log to a file)
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	printBanner()

	// 3. Data tables
	printSection("Data")
	archetypes, err := data.LoadArchetypeTable(filepath.Join(cfg.Data.Dir, "archetypes.yaml"))
	if err != nil {
		return fmt.Errorf("archetypes: %w", err)
	}
	printStat("archetypes", archetypes.Count())
	sprites, err := data.LoadSpriteTable(filepath.Join(cfg.Data.Dir, "sprites.yaml"))
	if err != nil {
		return fmt.Errorf("sprites: %w", err)
	}
	printStat("sprites", sprites.Count())

	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 4. Audio
	printSection("Audio")
	var (
		bank *audio.Bank
		sink system.Sink
	)
	if cfg.Audio.Enabled {
		bank = audio.NewBank(cfg.Audio.SampleRate, cfg.Audio.Volume)
		player := audio.NewPlayer(cfg.Audio.SampleRate)
		if err := player.Start(); err != nil {
			// Non-fatal, the game runs silent
			log.Warn("audio unavailable", zap.Error(err))
			printWarn("no audio device, playing silent")
		} else {
			defer player.Close()
			sink = player
			printOK(fmt.Sprintf("speaker at %d Hz", cfg.Audio.SampleRate))
		}
	} else {
		printOK("audio disabled")
	}
	fmt.Println()

	// 5. Terminal + game session
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	fini := sync.OnceFunc(screen.Fini)
	defer fini()

	reg := ecs.New(ecs.WithLogger(log), ecs.WithRandomIDPrefix(cfg.Registry.RandomIDPrefix))
	g, err := game.New(cfg.Game, game.Deps{
		Registry:   reg,
		Archetypes: archetypes,
		Sprites:    sprites,
		Sounds:     bank,
		Tuning:     lua,
		Screen:     screen,
		Sink:       sink,
		Verify:     cfg.Registry.VerifyEachTick,
		Log:        log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	// 6. Input goroutine
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return // screen finalized
			case *tcell.EventKey:
				g.Input().HandleKey(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	// 7. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.FrameRate)
	defer ticker.Stop()
	log.Info("frame loop started", zap.Duration("frame", cfg.Game.FrameRate))

	for !g.Over() {
		select {
		case <-ticker.C:
			if err := g.Tick(cfg.Game.FrameRate); err != nil {
				log.Error("frame failed", zap.Int("frame", g.Frame()), zap.Error(err))
				return fmt.Errorf("frame %d: %w", g.Frame(), err)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			g.Input().Quit()
			g.Tick(cfg.Game.FrameRate)
		}
	}

	fini()
	printSection("Game over")
	printStat("score", g.Score())
	printStat("frames", g.Frame())
	printReady("thanks for playing")
	fmt.Println()
	return nil
}

func startProfile(cfg config.ProfileConfig) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath(cfg.Dir), profile.NoShutdownHook, profile.Quiet}
	switch cfg.Mode {
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	default:
		return nil
	}
	return profile.Start(opts...)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
