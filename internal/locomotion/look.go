package locomotion

import "github.com/go-gl/mathgl/mgl64"

const maxHeadPitch = 89.0

// OnLook applies a look delta. X turns the body about world up; Y tilts
// the head, inverted so that a positive delta looks up.
func (c *Controller) OnLook(delta mgl64.Vec2) {
	if !c.canMove {
		return
	}

	yaw := mgl64.QuatRotate(mgl64.DegToRad(delta.X()*c.cfg.Look.Horizontal), worldUp)
	c.rotation = c.rotation.Mul(yaw).Normalize()

	c.headPitch -= delta.Y() * c.cfg.Look.Vertical
	c.headPitch = mgl64.Clamp(c.headPitch, -maxHeadPitch, maxHeadPitch)
}

func (c *Controller) Rotation() mgl64.Quat { return c.rotation }

// HeadPitch is in degrees; positive looks down.
func (c *Controller) HeadPitch() float64 { return c.headPitch }

func (c *Controller) Forward() mgl64.Vec3 {
	return c.rotation.Rotate(localForward)
}

func (c *Controller) Right() mgl64.Vec3 {
	return c.rotation.Rotate(localRight)
}

func (c *Controller) headLocalRotation() mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(c.headPitch), localRight)
}

func (c *Controller) HeadPosition() mgl64.Vec3 {
	return c.body.Position().Add(c.rotation.Rotate(mgl64.Vec3{0, c.cfg.HeadHeight, 0}))
}

func (c *Controller) HeadForward() mgl64.Vec3 {
	return c.rotation.Mul(c.headLocalRotation()).Rotate(localForward)
}
