package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/lixenwraith/ninja-engine/asset"
	"github.com/lixenwraith/ninja-engine/audio"
	"github.com/lixenwraith/ninja-engine/config"
	"github.com/lixenwraith/ninja-engine/core"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/game"
	"github.com/lixenwraith/ninja-engine/input"
	"github.com/lixenwraith/ninja-engine/terminal"
)

const statsInterval = 5 * time.Second

var (
	configFlag = flag.String("config", config.DefaultPath, "Path to engine TOML config")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/ninja.log (or debug.log_file)")
)

func main() {
	// Panic recovery: reset the terminal even if a frame crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(*configFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "ninja: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	logging, err := core.SetupLogging(debug, cfg.Debug.LogFile, level)
	if err != nil {
		return err
	}
	defer logging.Close()
	log := logging.Engine()
	log.Info("config loaded", "path", configPath, "target_fps", cfg.Graphics.TargetFPS, "physics_fps", cfg.Physics.PhysicsFPS)

	loader, err := asset.NewLoader(cfg.Game.AssetRoot, cfg.Graphics.GraphicsScale)
	if err != nil {
		return err
	}

	keyboard := terminal.NewKeyboard(cfg.HoldWindow(), nil)
	screen, err := terminal.NewScreen(keyboard, log)
	if err != nil {
		return err
	}
	screen.Fill(cfg.BackgroundColor())

	ctx, err := engine.NewGameContext(cfg.EngineSettings(), screen, nil, log)
	if err != nil {
		screen.Close()
		return err
	}
	// Closed in reverse: audio first, then the terminal
	ctx.AddCloser(screen)

	router := input.NewRouter(keyboard, cfg.InputMapping())
	ctx.Events = screen
	ctx.Input = router

	var sounds game.Sounds
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log)
		if err := player.Initialize(); err != nil {
			log.Warn("audio disabled, continuing without sound", "error", err)
		}
		ctx.AddCloser(player)
		sounds = player
	}

	if _, err := game.Setup(ctx, router, loader, sounds, cfg); err != nil {
		return errors.Join(err, ctx.Teardown())
	}

	screen.Start()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if debug {
		// Deferred after logging.Close, so the final snapshot lands before the log closes
		stopReport := startReporter(sigCtx, ctx.Stats, statsInterval, log)
		defer stopReport()
	}

	return ctx.Run(sigCtx)
}
