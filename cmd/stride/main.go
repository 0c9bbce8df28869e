package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/host"
	"github.com/Versifine/stride/internal/hud"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/physics"
	"github.com/Versifine/stride/internal/scene"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	capture, err := host.NewCapture(cfg.Capture.Mode, os.Stdin, os.Stdout)
	if err != nil {
		slog.Error("Failed to set up input capture", "error", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: capture.Wrap(os.Stdout),
		File:   cfg.Logging.File,
	}); err != nil {
		slog.Error("Failed to open log file", "error", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, capture)
	stop()
	_ = logger.Close()
	if err != nil {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, capture host.InputCapture) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := host.NewRegistry()
	defer func() {
		if err := reg.Close(); err != nil {
			slog.Warn("Shutdown incomplete", "error", err)
		}
	}()

	world := physics.NewWorld(mgl64.Vec3{0, cfg.Simulation.Gravity, 0})
	scene.Build(world, logger.With("scene"))
	body := physics.NewCharacter(world, "player", physics.Layer(cfg.Player.Layer),
		mgl64.Vec3(cfg.Player.Spawn), cfg.Player.Radius, cfg.Player.Height)

	player := audio.NewPlayer(audio.Config{
		Enabled:    cfg.Audio.Enabled,
		SampleRate: cfg.Audio.SampleRate,
		Buffer:     cfg.Audio.Buffer,
	}, logger.With("audio"))
	if cfg.Audio.Enabled {
		if err := player.Start(); err != nil {
			slog.Warn("Audio device unavailable, mixing headless", "error", err)
		}
	}

	crosshair := hud.NewImage("")
	crosshair.OnChange(func(s hud.Sprite) {
		slog.Debug("Crosshair changed", "sprite", s)
	})

	for _, entry := range []struct {
		name      string
		component any
	}{
		{"physics", world},
		{"character", body},
		{"audio", player},
		{"crosshair", crosshair},
	} {
		if err := reg.Register(entry.name, entry.component); err != nil {
			return err
		}
	}
	slog.Info("Components registered", "names", reg.Names())

	deps, err := resolveDeps(reg)
	if err != nil {
		return err
	}
	controller, err := locomotion.New(cfg.Player, deps)
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	bus := event.NewBus()
	controller.Bind(bus)

	loop := host.NewLoop(bus, controller, host.LoopConfig{
		TickRate: cfg.Simulation.TickRate,
		Ticks:    cfg.Simulation.Ticks,
		Realtime: cfg.Simulation.Realtime,
	})
	if cfg.Simulation.Script != "" {
		script, err := host.LoadScript(cfg.Simulation.Script)
		if err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		loop.WithScript(script)
	}
	loop.OnTick(func(tick uint64) {
		player.Drain(loop.Interval())
		if controller.Frozen() {
			slog.Info("Run complete", "tick", tick, "position", controller.State().Position)
			cancel()
			return
		}
		if tick%uint64(cfg.Simulation.TickRate) == 0 {
			st := controller.State()
			slog.Info("Player",
				"tick", tick,
				"position", st.Position,
				"grounded", st.Grounded,
				"mode", st.Mode,
				"target", st.HasTarget,
				"footsteps", player.Played(),
			)
		}
	})

	if err := capture.Capture(); err != nil {
		if !errors.Is(err, host.ErrNotTerminal) {
			return fmt.Errorf("capture input: %w", err)
		}
		slog.Warn("Input capture skipped", "error", err)
	}
	defer func() {
		if err := capture.Release(); err != nil {
			slog.Warn("Failed to release input capture", "error", err)
		}
	}()

	return loop.Run(ctx)
}

func resolveDeps(reg *host.Registry) (locomotion.Deps, error) {
	var deps locomotion.Deps
	var err error
	if deps.Physics, err = host.Resolve[locomotion.Physics](reg, "physics"); err != nil {
		return deps, err
	}
	if deps.Character, err = host.Resolve[locomotion.Character](reg, "character"); err != nil {
		return deps, err
	}
	if deps.Audio, err = host.Resolve[locomotion.AudioSource](reg, "audio"); err != nil {
		return deps, err
	}
	if deps.Crosshair, err = host.Resolve[locomotion.Crosshair](reg, "crosshair"); err != nil {
		return deps, err
	}
	deps.Logger = logger.With("locomotion")
	return deps, nil
}
