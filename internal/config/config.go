package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Versifine/stride/internal/audio"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Simulation SimulationConfig `yaml:"simulation"`
	Player     PlayerConfig     `yaml:"player"`
	Audio      AudioConfig      `yaml:"audio"`
	Capture    CaptureConfig    `yaml:"capture"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type SimulationConfig struct {
	TickRate int     `yaml:"tick_rate"`
	Ticks    int     `yaml:"ticks"` // 0 runs until interrupted
	Realtime bool    `yaml:"realtime"`
	Gravity  float64 `yaml:"gravity"`
	Script   string  `yaml:"script"`
}

type PlayerConfig struct {
	ForceMultiplier   float64         `yaml:"force_multiplier"`
	SprintMultiplier  float64         `yaml:"sprint_multiplier"`
	GravityMultiplier float64         `yaml:"gravity_multiplier"`
	JumpForce         float64         `yaml:"jump_force"`
	Look              LookConfig      `yaml:"look_sensitivity"`
	Footsteps         FootstepConfig  `yaml:"footsteps"`
	InteractDistance  float64         `yaml:"interact_distance"`
	HeadHeight        float64         `yaml:"head_height"`
	Radius            float64         `yaml:"radius"`
	Height            float64         `yaml:"height"`
	Layer             int             `yaml:"layer"`
	Spawn             [3]float64      `yaml:"spawn"`
	Crosshair         CrosshairConfig `yaml:"crosshair"`
}

type LookConfig struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

type FootstepConfig struct {
	Delay              float64      `yaml:"delay"`
	RunDelayMultiplier float64      `yaml:"run_delay_multiplier"`
	Walk               []audio.Clip `yaml:"walk"`
	Run                []audio.Clip `yaml:"run"`
}

type CrosshairConfig struct {
	On  string `yaml:"on"`
	Off string `yaml:"off"`
}

type AudioConfig struct {
	Enabled    bool          `yaml:"enabled"`
	SampleRate int           `yaml:"sample_rate"`
	Buffer     time.Duration `yaml:"buffer"`
}

type CaptureConfig struct {
	Mode string `yaml:"mode"` // "locked" or "none"
}

var ErrInvalid = errors.New("invalid config")

// Default returns the values used for anything the file leaves out.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Simulation: SimulationConfig{
			TickRate: 50,
			Gravity:  -9.81,
		},
		Player: PlayerConfig{
			ForceMultiplier:   0.1,
			SprintMultiplier:  1.6,
			GravityMultiplier: 0.0008,
			JumpForce:         0.12,
			Look: LookConfig{
				Horizontal: 0.2,
				Vertical:   0.2,
			},
			Footsteps: FootstepConfig{
				Delay:              0.6,
				RunDelayMultiplier: 1.5,
			},
			InteractDistance: 2,
			HeadHeight:       0.8,
			Radius:           0.5,
			Height:           2,
			Layer:            8,
			Spawn:            [3]float64{0, 1, 0},
			Crosshair: CrosshairConfig{
				On:  "cross_on",
				Off: "cross_off",
			},
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
		Capture: CaptureConfig{
			Mode: "none",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("%w: simulation.tick_rate must be positive, got %d", ErrInvalid, c.Simulation.TickRate)
	}
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("%w: simulation.ticks must not be negative, got %d", ErrInvalid, c.Simulation.Ticks)
	}
	if err := c.Player.Validate(); err != nil {
		return err
	}
	switch c.Capture.Mode {
	case "", "none", "locked":
	default:
		return fmt.Errorf("%w: capture.mode %q is not one of none, locked", ErrInvalid, c.Capture.Mode)
	}
	return nil
}

func (p *PlayerConfig) Validate() error {
	if p.Layer < 0 || p.Layer > 31 {
		return fmt.Errorf("%w: player.layer must be in [0, 31], got %d", ErrInvalid, p.Layer)
	}
	if p.InteractDistance <= 0 {
		return fmt.Errorf("%w: player.interact_distance must be positive", ErrInvalid)
	}
	if p.Radius <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: player.radius and player.height must be positive", ErrInvalid)
	}
	if p.SprintMultiplier <= 0 {
		return fmt.Errorf("%w: player.sprint_multiplier must be positive", ErrInvalid)
	}
	if p.Footsteps.Delay <= 0 {
		return fmt.Errorf("%w: player.footsteps.delay must be positive", ErrInvalid)
	}
	if p.Footsteps.RunDelayMultiplier <= 0 {
		return fmt.Errorf("%w: player.footsteps.run_delay_multiplier must be positive", ErrInvalid)
	}
	// Footstep selection never picks index 0, so one clip leaves nothing to pick.
	if len(p.Footsteps.Walk) < 2 {
		return fmt.Errorf("%w: player.footsteps.walk needs at least 2 clips, got %d", ErrInvalid, len(p.Footsteps.Walk))
	}
	if len(p.Footsteps.Run) < 2 {
		return fmt.Errorf("%w: player.footsteps.run needs at least 2 clips, got %d", ErrInvalid, len(p.Footsteps.Run))
	}
	return nil
}
