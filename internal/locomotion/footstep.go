package locomotion

import (
	"fmt"
	"math/rand/v2"

	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
)

// footsteps paces footstep sounds by distance walked. The distance is
// squared so no square root is taken per tick; Delay is therefore a
// squared distance too.
//
// Index 0 of each pool holds the most recently played clip and is never
// picked, so a pool needs at least two clips.
type footsteps struct {
	walk          []audio.Clip
	run           []audio.Clip
	delay         float64
	runMultiplier float64
	budget        float64
	rng           *rand.Rand
}

func newFootsteps(cfg config.FootstepConfig, rng *rand.Rand) (*footsteps, error) {
	if len(cfg.Walk) < 2 {
		return nil, fmt.Errorf("%w: walk pool has %d", ErrFootstepPool, len(cfg.Walk))
	}
	if len(cfg.Run) < 2 {
		return nil, fmt.Errorf("%w: run pool has %d", ErrFootstepPool, len(cfg.Run))
	}
	return &footsteps{
		walk:          append([]audio.Clip(nil), cfg.Walk...),
		run:           append([]audio.Clip(nil), cfg.Run...),
		delay:         cfg.Delay,
		runMultiplier: cfg.RunDelayMultiplier,
		rng:           rng,
	}, nil
}

// advance spends movedSqr from the budget and returns the clip to play,
// if any. At most one clip is returned per call.
func (f *footsteps) advance(movedSqr float64, sprinting bool) (audio.Clip, bool) {
	f.budget -= movedSqr
	if f.budget >= 0 {
		return audio.Clip{}, false
	}

	pool := f.walk
	delay := f.delay
	if sprinting {
		pool = f.run
		delay *= f.runMultiplier
	}

	i := 1 + f.rng.IntN(len(pool)-1)
	clip := pool[i]
	copy(pool[1:i+1], pool[:i])
	pool[0] = clip

	f.budget += delay
	return clip, true
}
