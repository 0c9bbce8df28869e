// Package host drives the simulation: it owns the fixed-rate loop, the
// input sources feeding the event bus, and the table of collaborators
// handed to the controller.
package host

import (
	"context"
	"log/slog"
	"time"

	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/logger"
)

const defaultTickRate = 50

// Stepper is advanced once per fixed step.
type Stepper interface {
	Step()
}

type LoopConfig struct {
	TickRate int // steps per second
	Ticks    int // 0 runs until the context ends
	// Realtime paces steps with a ticker. Otherwise steps run back to back.
	Realtime bool
}

// Loop drains queued input before every step so handlers and Step never
// run concurrently.
type Loop struct {
	bus      *event.Bus
	stepper  Stepper
	script   *Script
	interval time.Duration
	ticks    uint64
	realtime bool
	onTick   func(tick uint64)
	log      *slog.Logger

	tick uint64
}

func NewLoop(bus *event.Bus, stepper Stepper, cfg LoopConfig) *Loop {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}
	ticks := uint64(0)
	if cfg.Ticks > 0 {
		ticks = uint64(cfg.Ticks)
	}
	return &Loop{
		bus:      bus,
		stepper:  stepper,
		interval: time.Second / time.Duration(rate),
		ticks:    ticks,
		realtime: cfg.Realtime,
		log:      logger.With("host"),
	}
}

// WithScript replays s onto the bus as the loop advances.
func (l *Loop) WithScript(s *Script) *Loop {
	l.script = s
	return l
}

// OnTick registers a hook run after every step.
func (l *Loop) OnTick(fn func(tick uint64)) *Loop {
	l.onTick = fn
	return l
}

func (l *Loop) WithLogger(log *slog.Logger) *Loop {
	l.log = log
	return l
}

// Tick reports how many steps have run.
func (l *Loop) Tick() uint64 {
	return l.tick
}

func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Run steps until the tick limit is reached or ctx ends. Cancellation is
// a normal stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("Loop started", "interval", l.interval, "ticks", l.ticks, "realtime", l.realtime)

	var tickC <-chan time.Time
	if l.realtime {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for l.ticks == 0 || l.tick < l.ticks {
		if tickC != nil {
			select {
			case <-ctx.Done():
				l.log.Info("Loop stopped", "tick", l.tick)
				return nil
			case <-tickC:
			}
		} else if ctx.Err() != nil {
			l.log.Info("Loop stopped", "tick", l.tick)
			return nil
		}

		l.step()
	}

	l.log.Info("Loop finished", "tick", l.tick)
	return nil
}

func (l *Loop) step() {
	l.tick++
	if l.script != nil {
		l.script.Emit(l.tick, l.bus)
	}
	l.bus.Drain()
	l.stepper.Step()
	if l.onTick != nil {
		l.onTick(l.tick)
	}
}
