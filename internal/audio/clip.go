package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Clip is a handle to a short one-shot sound. Footstep clips are
// synthesized from these parameters rather than loaded from disk.
type Clip struct {
	Name      string        `yaml:"name"`
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
	Volume    float64       `yaml:"volume"`
}

func (c Clip) String() string {
	return c.Name
}

// Streamer renders the clip at the given sample rate.
func (c Clip) Streamer(sr beep.SampleRate) beep.Streamer {
	d := c.Duration
	if d <= 0 {
		d = defaultClipDuration
	}
	return beep.Take(sr.N(d), NewThumpGenerator(sr, c.Frequency, c.Volume))
}

// ThumpGenerator produces a damped low sine with a short noise burst,
// which reads as a footfall.
type ThumpGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
	seed   int64
}

func NewThumpGenerator(sr beep.SampleRate, freq, volume float64) *ThumpGenerator {
	if freq <= 0 {
		freq = defaultThumpFrequency
	}
	if volume <= 0 || volume > 1 {
		volume = defaultVolume
	}
	return &ThumpGenerator{
		sr:     sr,
		freq:   freq,
		volume: volume,
		seed:   int64(freq*1000) + 1,
	}
}

func (g *ThumpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 30)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		burst := 0.0
		if t < 0.015 {
			burst = 0.3 * noise
		}

		sample := g.volume * envelope * (0.7*math.Sin(2*math.Pi*g.freq*t) + burst)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThumpGenerator) Err() error {
	return nil
}
