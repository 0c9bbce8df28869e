package locomotion

import (
	"math"
	"testing"

	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

func TestStep_FlatGroundForward(t *testing.T) {
	r := newRig(t, testConfig())
	r.c.OnMovement(mgl64.Vec2{0, 1})

	r.c.Step()

	disp := r.body.lastMove()
	approxEqual(t, disp.X(), 0, 1e-9, "disp.x")
	approxEqual(t, disp.Z(), 5, 1e-9, "disp.z")
	approxEqual(t, disp.Y(), groundStick, 1e-12, "disp.y")
	approxEqual(t, r.c.State().VerticalSpeed, -1, 1e-12, "verticalSpeed")
}

func TestStep_HorizontalSpeed(t *testing.T) {
	tests := []struct {
		name      string
		intent    mgl64.Vec2
		sprinting bool
		want      mgl64.Vec3
	}{
		{"forward", mgl64.Vec2{0, 1}, false, mgl64.Vec3{0, 0, 5}},
		{"backward", mgl64.Vec2{0, -1}, false, mgl64.Vec3{0, 0, -5}},
		{"strafe right", mgl64.Vec2{1, 0}, false, mgl64.Vec3{5, 0, 0}},
		{"sprint forward", mgl64.Vec2{0, 1}, true, mgl64.Vec3{0, 0, 10}},
		{"diagonal", mgl64.Vec2{1, 1}, false, mgl64.Vec3{5 / math.Sqrt2, 0, 5 / math.Sqrt2}},
		{"over-length input", mgl64.Vec2{0, 3}, false, mgl64.Vec3{0, 0, 5}},
		{"idle", mgl64.Vec2{}, false, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, testConfig())
			r.c.OnMovement(tt.intent)
			r.c.OnSprint(tt.sprinting)

			r.c.Step()

			disp := r.body.lastMove()
			approxEqual(t, disp.X(), tt.want.X(), 1e-9, "disp.x")
			approxEqual(t, disp.Z(), tt.want.Z(), 1e-9, "disp.z")
		})
	}
}

func TestStep_ProjectsOntoSlope(t *testing.T) {
	r := newRig(t, testConfig())
	slope := mgl64.DegToRad(30)
	r.world.groundNormal = mgl64.Vec3{0, math.Cos(slope), -math.Sin(slope)}
	r.c.OnMovement(mgl64.Vec2{0, 1})

	r.c.Step()

	disp := r.body.lastMove()
	approxEqual(t, disp.Z(), 5*math.Cos(slope), 1e-9, "disp.z")
	approxEqual(t, disp.Y(), groundStick, 1e-12, "disp.y")
	if r.world.sphereCasts != 1 {
		t.Fatalf("sphere casts = %d, want 1", r.world.sphereCasts)
	}
	if got := r.world.sphereOrigin; got != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("ground cast origin = %v, want body position", got)
	}
	if got := r.world.sphereRadius; got != 0.5 {
		t.Errorf("ground cast radius = %v, want 0.5", got)
	}
	if got := r.world.sphereDir; got != (mgl64.Vec3{0, -1, 0}) {
		t.Errorf("ground cast dir = %v, want straight down", got)
	}
	if got := r.world.sphereDist; got != 1 {
		t.Errorf("ground cast distance = %v, want half the height", got)
	}
	if got := r.world.sphereMask; got != physics.AllLayers {
		t.Errorf("ground cast mask = %v, want AllLayers", got)
	}
	if got := r.world.sphereTriggers; got != physics.IgnoreTriggers {
		t.Errorf("ground cast triggers = %v, want IgnoreTriggers", got)
	}
}

func TestStep_GroundProbeMissKeepsDirectionFlat(t *testing.T) {
	r := newRig(t, testConfig())
	r.world.groundHit = false
	r.c.OnMovement(mgl64.Vec2{0, 1})

	r.c.Step()

	approxEqual(t, r.body.lastMove().Z(), 5, 1e-9, "disp.z")
}

func TestStep_JumpArc(t *testing.T) {
	r := newRig(t, testConfig())

	r.c.OnJump()
	approxEqual(t, r.c.State().VerticalSpeed, 8, 1e-12, "verticalSpeed after jump")

	r.c.Step()
	first := r.body.lastMove().Y()
	approxEqual(t, first, 8-9.81, 1e-9, "disp.y on first airborne step")

	r.body.grounded = false
	prev := first
	for i := 0; i < 5; i++ {
		r.c.Step()
		got := r.body.lastMove().Y()
		approxEqual(t, got-prev, -9.81, 1e-9, "per-step change of disp.y")
		prev = got
	}
}

func TestStep_LandingResetsToGroundStick(t *testing.T) {
	r := newRig(t, testConfig())
	r.body.grounded = false
	r.c.Step()
	r.c.Step()
	if r.c.State().VerticalSpeed >= 0 {
		t.Fatalf("verticalSpeed = %f while falling, want negative", r.c.State().VerticalSpeed)
	}

	r.body.grounded = true
	r.c.Step()

	approxEqual(t, r.body.lastMove().Y(), groundStick, 1e-12, "disp.y after landing")
	approxEqual(t, r.c.State().VerticalSpeed, -1, 1e-12, "verticalSpeed after landing")
}

func TestOnJump_RequiresGroundAndMovement(t *testing.T) {
	r := newRig(t, testConfig())
	r.body.grounded = false
	r.c.OnJump()
	if v := r.c.State().VerticalSpeed; v != 0 {
		t.Fatalf("verticalSpeed = %f after airborne jump, want 0", v)
	}

	r.body.grounded = true
	r.c.Victory()
	r.c.OnJump()
	if v := r.c.State().VerticalSpeed; v != 0 {
		t.Fatalf("verticalSpeed = %f after frozen jump, want 0", v)
	}
}

func TestStep_NoOpWhenMovementDisabled(t *testing.T) {
	r := newRig(t, testConfig())
	r.c.OnMovement(mgl64.Vec2{0, 1})
	r.c.Victory()

	for i := 0; i < 3; i++ {
		r.c.Step()
	}

	if len(r.body.moves) != 0 {
		t.Fatalf("moves = %d, want 0 while frozen", len(r.body.moves))
	}
	if r.world.raycasts != 0 || r.world.sphereCasts != 0 {
		t.Fatalf("queries ran while frozen: raycasts=%d sphereCasts=%d", r.world.raycasts, r.world.sphereCasts)
	}
	if r.c.State().Tick != 3 {
		t.Fatalf("tick = %d, want 3", r.c.State().Tick)
	}
}

func TestStep_MovementFollowsYaw(t *testing.T) {
	r := newRig(t, testConfig())
	r.c.OnLook(mgl64.Vec2{90, 0})
	r.c.OnMovement(mgl64.Vec2{0, 1})

	r.c.Step()

	disp := r.body.lastMove()
	approxEqual(t, disp.X(), 5, 1e-9, "disp.x")
	approxEqual(t, disp.Z(), 0, 1e-9, "disp.z")
}
