package locomotion

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/hud"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

const testPlayerLayer physics.Layer = 8

type fakeWorld struct {
	gravity mgl64.Vec3

	groundNormal   mgl64.Vec3
	groundHit      bool
	sphereCasts    int
	sphereOrigin   mgl64.Vec3
	sphereRadius   float64
	sphereDir      mgl64.Vec3
	sphereDist     float64
	sphereMask     physics.LayerMask
	sphereTriggers physics.TriggerInteraction

	rayHit    physics.Hit
	rayOK     bool
	raycasts  int
	rayOrigin mgl64.Vec3
	rayDir    mgl64.Vec3
	rayDist   float64
	rayMask   physics.LayerMask
}

func (w *fakeWorld) Gravity() mgl64.Vec3 { return w.gravity }

func (w *fakeWorld) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask, triggers physics.TriggerInteraction) (physics.Hit, bool) {
	w.sphereCasts++
	w.sphereOrigin, w.sphereRadius, w.sphereDir = origin, radius, dir
	w.sphereDist, w.sphereMask, w.sphereTriggers = maxDist, mask, triggers
	if !w.groundHit {
		return physics.Hit{}, false
	}
	return physics.Hit{Normal: w.groundNormal, Distance: maxDist / 2}, true
}

func (w *fakeWorld) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask) (physics.Hit, bool) {
	w.raycasts++
	w.rayOrigin, w.rayDir, w.rayDist, w.rayMask = origin, dir, maxDist, mask
	return w.rayHit, w.rayOK
}

func (w *fakeWorld) aimAt(owner any) {
	w.rayOK = true
	w.rayHit = physics.Hit{Collider: &physics.Collider{Name: "target", Owner: owner}}
}

type fakeBody struct {
	pos      mgl64.Vec3
	grounded bool
	moves    []mgl64.Vec3
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Radius() float64      { return 0.5 }
func (b *fakeBody) Height() float64      { return 2 }
func (b *fakeBody) Layer() physics.Layer { return testPlayerLayer }
func (b *fakeBody) IsGrounded() bool     { return b.grounded }

func (b *fakeBody) Move(disp mgl64.Vec3) {
	b.moves = append(b.moves, disp)
	b.pos = b.pos.Add(disp)
}

func (b *fakeBody) lastMove() mgl64.Vec3 {
	return b.moves[len(b.moves)-1]
}

type fakeAudio struct {
	played []audio.Clip
}

func (a *fakeAudio) PlayOneShot(clip audio.Clip) { a.played = append(a.played, clip) }

type fakeCrosshair struct {
	sprite hud.Sprite
}

func (c *fakeCrosshair) SetSprite(s hud.Sprite) { c.sprite = s }

type fakeInteractable struct {
	available bool
	oneWay    bool
	on        int
	off       int
}

func (f *fakeInteractable) IsAvailable() bool         { return f.available }
func (f *fakeInteractable) IsOneWay() bool            { return f.oneWay }
func (f *fakeInteractable) InteractOn(_ *Controller)  { f.on++ }
func (f *fakeInteractable) InteractOff(_ *Controller) { f.off++ }

func clips(prefix string, n int) []audio.Clip {
	out := make([]audio.Clip, n)
	for i := range out {
		out[i] = audio.Clip{Name: prefix + string(rune('a'+i))}
	}
	return out
}

func testConfig() config.PlayerConfig {
	return config.PlayerConfig{
		ForceMultiplier:   5,
		SprintMultiplier:  2,
		GravityMultiplier: 1,
		JumpForce:         8,
		Look:              config.LookConfig{Horizontal: 1, Vertical: 1},
		Footsteps: config.FootstepConfig{
			Delay:              4,
			RunDelayMultiplier: 0.5,
			Walk:               clips("walk_", 4),
			Run:                clips("run_", 3),
		},
		InteractDistance: 2,
		HeadHeight:       0.8,
		Crosshair:        config.CrosshairConfig{On: "cross_on", Off: "cross_off"},
	}
}

type rig struct {
	c         *Controller
	world     *fakeWorld
	body      *fakeBody
	audio     *fakeAudio
	crosshair *fakeCrosshair
}

func newRig(t *testing.T, cfg config.PlayerConfig) *rig {
	t.Helper()
	r := &rig{
		world: &fakeWorld{
			gravity:      mgl64.Vec3{0, -9.81, 0},
			groundNormal: mgl64.Vec3{0, 1, 0},
			groundHit:    true,
		},
		body:      &fakeBody{pos: mgl64.Vec3{0, 1, 0}, grounded: true},
		audio:     &fakeAudio{},
		crosshair: &fakeCrosshair{},
	}
	c, err := New(cfg, Deps{
		Physics:   r.world,
		Character: r.body,
		Audio:     r.audio,
		Crosshair: r.crosshair,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Logger:    logger.Discard(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r.c = c
	return r
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}
