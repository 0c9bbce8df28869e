package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Character is a collision-resolving mover shaped like an upright box of
// width 2*radius. Position is the center of the body, as with a capsule.
type Character struct {
	world      *World
	self       *Collider
	position   mgl64.Vec3
	radius     float64
	height     float64
	slopeLimit float64
	stepOffset float64
	grounded   bool
}

func NewCharacter(world *World, name string, layer Layer, position mgl64.Vec3, radius, height float64) *Character {
	if radius <= 0 {
		radius = DefaultCharacterRadius
	}
	if height <= 0 {
		height = DefaultCharacterHeight
	}
	c := &Character{
		world:      world,
		position:   position,
		radius:     radius,
		height:     height,
		slopeLimit: DefaultSlopeLimit,
		stepOffset: DefaultStepOffset,
	}
	c.self = NewCollider(name, layer, c.bounds(position))
	c.self.Owner = c
	if world != nil {
		world.Add(c.self)
	}
	c.grounded = c.restingOnSupport()
	return c
}

func (c *Character) Position() mgl64.Vec3 { return c.position }
func (c *Character) Radius() float64      { return c.radius }
func (c *Character) Height() float64      { return c.height }
func (c *Character) Layer() Layer         { return c.self.Layer }
func (c *Character) IsGrounded() bool     { return c.grounded }
func (c *Character) Collider() *Collider  { return c.self }

func (c *Character) SetSlopeLimit(degrees float64) {
	c.slopeLimit = degrees
}

// SetPosition teleports the character without collision checks.
func (c *Character) SetPosition(pos mgl64.Vec3) {
	c.position = pos
	c.self.Shape = c.bounds(pos)
	c.grounded = c.restingOnSupport()
}

// Move displaces the character, sliding along box colliders on the
// horizontal axes and landing on walkable surfaces.
func (c *Character) Move(disp mgl64.Vec3) {
	pos := c.position

	pos[0] += c.resolveAxis(pos, 0, disp.X())
	pos[2] += c.resolveAxis(pos, 2, disp.Z())

	dy := disp.Y()
	if dy > 0 {
		dy = c.clampCeiling(pos, dy)
	}

	feet := pos.Y() - c.height/2
	newFeet := feet + dy
	c.grounded = false
	if support, ok := c.supportHeight(pos.X(), pos.Z(), feet); ok {
		switch {
		case dy <= 0 && newFeet <= support+SkinWidth:
			newFeet = support
			c.grounded = true
		case newFeet < support:
			newFeet = support
		}
	}
	pos[1] = newFeet + c.height/2

	c.position = pos
	c.self.Shape = c.bounds(pos)
}

func (c *Character) bounds(pos mgl64.Vec3) AABB {
	return BoxAt(pos, mgl64.Vec3{2 * c.radius, c.height, 2 * c.radius})
}

func (c *Character) restingOnSupport() bool {
	feet := c.position.Y() - c.height/2
	support, ok := c.supportHeight(c.position.X(), c.position.Z(), feet)
	return ok && math.Abs(feet-support) <= SkinWidth
}

func (c *Character) solids() []AABB {
	if c.world == nil {
		return nil
	}
	var out []AABB
	for _, col := range c.world.colliders {
		if col == c.self || col.Trigger {
			continue
		}
		if box, ok := col.Shape.(AABB); ok {
			out = append(out, box)
		}
	}
	return out
}

func (c *Character) resolveAxis(pos mgl64.Vec3, axis int, delta float64) float64 {
	if nearlyZero(delta) {
		return delta
	}
	body := c.bounds(pos)
	// Anything lower than the step offset is climbed rather than blocking.
	body.MinY += c.stepOffset

	lo := [3]float64{body.MinX, body.MinY, body.MinZ}
	hi := [3]float64{body.MaxX, body.MaxY, body.MaxZ}
	allowed := delta

	for _, box := range c.solids() {
		bLo := [3]float64{box.MinX, box.MinY, box.MinZ}
		bHi := [3]float64{box.MaxX, box.MaxY, box.MaxZ}

		overlapsOthers := true
		for other := 0; other < 3; other++ {
			if other == axis {
				continue
			}
			if hi[other] <= bLo[other] || lo[other] >= bHi[other] {
				overlapsOthers = false
				break
			}
		}
		if !overlapsOthers {
			continue
		}

		if delta > 0 && hi[axis] <= bLo[axis]+CollisionAxisTolerance {
			allowed = math.Min(allowed, bLo[axis]-hi[axis])
		} else if delta < 0 && lo[axis] >= bHi[axis]-CollisionAxisTolerance {
			allowed = math.Max(allowed, bHi[axis]-lo[axis])
		}
	}
	return allowed
}

func (c *Character) clampCeiling(pos mgl64.Vec3, dy float64) float64 {
	body := c.bounds(pos)
	for _, box := range c.solids() {
		if body.MaxX <= box.MinX || body.MinX >= box.MaxX ||
			body.MaxZ <= box.MinZ || body.MinZ >= box.MaxZ {
			continue
		}
		if box.MinY >= body.MaxY-CollisionAxisTolerance {
			dy = math.Min(dy, box.MinY-body.MaxY)
		}
	}
	return math.Max(dy, 0)
}

// supportHeight returns the highest walkable surface under the footprint
// that is no more than a step above the feet.
func (c *Character) supportHeight(x, z, feet float64) (float64, bool) {
	if c.world == nil {
		return 0, false
	}
	minNormalY := math.Cos(mgl64.DegToRad(c.slopeLimit))
	best := math.Inf(-1)
	found := false
	consider := func(h float64) {
		if h > feet+c.stepOffset {
			return
		}
		if h > best {
			best = h
			found = true
		}
	}

	for _, col := range c.world.colliders {
		if col == c.self || col.Trigger {
			continue
		}
		switch s := col.Shape.(type) {
		case Plane:
			if s.Normal.Y() < minNormalY {
				continue
			}
			if h, ok := s.HeightAt(x, z); ok {
				consider(h)
			}
		case AABB:
			if x+c.radius <= s.MinX || x-c.radius >= s.MaxX ||
				z+c.radius <= s.MinZ || z-c.radius >= s.MaxZ {
				continue
			}
			consider(s.MaxY)
		}
	}
	return best, found
}
