package locomotion

import (
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// groundStick is the downward displacement applied every grounded step so
// the character stays seated when walking down slopes.
const groundStick = -0.1

// move integrates one step of locomotion. Displacements and speeds are in
// world units per step, not per second.
func (c *Controller) move() {
	desired := c.Forward().Mul(c.intent.Y()).Add(c.Right().Mul(c.intent.X()))
	desired = Normalize(ProjectOnPlane(desired, c.groundNormal()))

	speed := c.cfg.ForceMultiplier
	if c.sprinting {
		speed *= c.cfg.SprintMultiplier
	}

	disp := mgl64.Vec3{desired.X() * speed, 0, desired.Z() * speed}

	if c.body.IsGrounded() && c.verticalSpeed <= 0 {
		c.verticalSpeed = -c.cfg.GravityMultiplier
		disp[1] = groundStick
	} else {
		c.verticalSpeed += c.physics.Gravity().Y() * c.cfg.GravityMultiplier
		disp[1] = c.verticalSpeed
	}

	c.body.Move(disp)
}

// groundNormal probes below the character for the surface it stands on.
// A miss yields the zero vector, which leaves the desired direction flat.
func (c *Controller) groundNormal() mgl64.Vec3 {
	hit, ok := c.physics.SphereCast(
		c.body.Position(),
		c.body.Radius(),
		worldDown,
		c.body.Height()/2,
		physics.AllLayers,
		physics.IgnoreTriggers,
	)
	if !ok {
		return mgl64.Vec3{}
	}
	return hit.Normal
}
