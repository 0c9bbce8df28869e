package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	defaultSampleRate     = beep.SampleRate(44100)
	defaultBufferDuration = 100 * time.Millisecond
	defaultClipDuration   = 120 * time.Millisecond
	defaultThumpFrequency = 90.0
	defaultVolume         = 0.5
)

type Config struct {
	Enabled    bool
	SampleRate int
	Buffer     time.Duration
}

// Player mixes one-shot clips into a single stream. Without Start it
// renders nothing to a device and the mix can be pulled through Stream,
// which is how headless runs and tests use it.
type Player struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	buffer     time.Duration
	mixer      *beep.Mixer
	started    bool
	played     int
	log        *slog.Logger
}

func NewPlayer(cfg Config, log *slog.Logger) *Player {
	sr := beep.SampleRate(cfg.SampleRate)
	if sr <= 0 {
		sr = defaultSampleRate
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBufferDuration
	}
	if log == nil {
		log = slog.Default()
	}
	return &Player{
		sampleRate: sr,
		buffer:     buffer,
		mixer:      &beep.Mixer{},
		log:        log,
	}
}

// Start opens the output device and attaches the mixer to it.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(p.buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
	return nil
}

func (p *Player) PlayOneShot(clip Clip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	streamer := clip.Streamer(p.sampleRate)
	if p.started {
		speaker.Lock()
		p.mixer.Add(streamer)
		speaker.Unlock()
	} else {
		p.mixer.Add(streamer)
	}
	p.played++
	p.log.Debug("Playing clip", "clip", clip.Name, "active", p.mixer.Len())
}

// Stream pulls mixed samples directly. Only meaningful when the player
// has not been started.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

// Drain discards d worth of mixed audio so finished clips leave the
// mixer. Headless runs call it once per step; it is a no-op once the
// speaker owns the mixer.
func (p *Player) Drain(d time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return 0
	}
	buf := make([][2]float64, p.sampleRate.N(d))
	n, _ := p.mixer.Stream(buf)
	return n
}

func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

func (p *Player) SampleRate() beep.SampleRate {
	return p.sampleRate
}
