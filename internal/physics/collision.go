package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Layer is a collision layer index in [0, 31].
type Layer uint8

// LayerMask selects a set of layers. Bit n set means layer n is included.
type LayerMask uint32

const AllLayers LayerMask = ^LayerMask(0)

func (l Layer) Mask() LayerMask {
	return LayerMask(1) << (l & 31)
}

func (m LayerMask) Has(l Layer) bool {
	return m&l.Mask() != 0
}

func (m LayerMask) Without(l Layer) LayerMask {
	return m &^ l.Mask()
}

// TriggerInteraction controls whether trigger colliders take part in a query.
type TriggerInteraction int

const (
	HitTriggers TriggerInteraction = iota
	IgnoreTriggers
)

// Shape is the geometric part of a collider.
type Shape interface {
	// Raycast returns the distance along dir to the first entry point.
	// Rays that start inside the shape do not report a hit.
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool)
	// SweepSphere moves a sphere from origin along dir and returns the
	// distance at first contact. Spheres overlapping at the start do not
	// report a hit.
	SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool)
}

type AABB struct {
	MinX float64
	MinY float64
	MinZ float64
	MaxX float64
	MaxY float64
	MaxZ float64
}

func BoxAt(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{
		MinX: center.X() - half.X(),
		MinY: center.Y() - half.Y(),
		MinZ: center.Z() - half.Z(),
		MaxX: center.X() + half.X(),
		MaxY: center.Y() + half.Y(),
		MaxZ: center.Z() + half.Z(),
	}
}

func (b AABB) Expand(r float64) AABB {
	return AABB{
		MinX: b.MinX - r,
		MinY: b.MinY - r,
		MinZ: b.MinZ - r,
		MaxX: b.MaxX + r,
		MaxY: b.MaxY + r,
		MaxZ: b.MaxZ + r,
	}
}

func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() > b.MinX && p.X() < b.MaxX &&
		p.Y() > b.MinY && p.Y() < b.MaxY &&
		p.Z() > b.MinZ && p.Z() < b.MaxZ
}

func (b AABB) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	if b.Contains(origin) {
		return 0, mgl64.Vec3{}, false
	}
	mins := [3]float64{b.MinX, b.MinY, b.MinZ}
	maxs := [3]float64{b.MaxX, b.MaxY, b.MaxZ}

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var normal mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		o := origin[axis]
		d := dir[axis]
		if math.Abs(d) < parallelTolerance {
			if o < mins[axis] || o > maxs[axis] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (mins[axis] - o) / d
		t2 := (maxs[axis] - o) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tEnter {
			tEnter = t1
			normal = mgl64.Vec3{}
			normal[axis] = sign
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, mgl64.Vec3{}, false
		}
	}

	if tEnter < 0 || tEnter > maxDist {
		return 0, mgl64.Vec3{}, false
	}
	return tEnter, normal, true
}

// SweepSphere treats the box as its Minkowski sum with the sphere, which
// squares off the rounded edges. Good enough for ground probing.
func (b AABB) SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	return b.Expand(radius).Raycast(origin, dir, maxDist)
}

func intersects(a, b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinY < b.MaxY && a.MaxY > b.MinY &&
		a.MinZ < b.MaxZ && a.MaxZ > b.MinZ
}

// Rect bounds a plane on the XZ axes.
type Rect struct {
	MinX float64
	MinZ float64
	MaxX float64
	MaxZ float64
}

func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Plane is a one-sided surface through Point facing Normal. A nil Bounds
// makes it infinite.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Bounds *Rect
}

func NewPlane(point, normal mgl64.Vec3, bounds *Rect) Plane {
	return Plane{Point: point, Normal: normal.Normalize(), Bounds: bounds}
}

func (p Plane) inBounds(pt mgl64.Vec3) bool {
	return p.Bounds == nil || p.Bounds.Contains(pt.X(), pt.Z())
}

func (p Plane) signedDistance(pt mgl64.Vec3) float64 {
	return p.Normal.Dot(pt.Sub(p.Point))
}

// HeightAt returns the surface height above (x, z).
func (p Plane) HeightAt(x, z float64) (float64, bool) {
	ny := p.Normal.Y()
	if math.Abs(ny) < parallelTolerance {
		return 0, false
	}
	if p.Bounds != nil && !p.Bounds.Contains(x, z) {
		return 0, false
	}
	y := p.Point.Y() - (p.Normal.X()*(x-p.Point.X())+p.Normal.Z()*(z-p.Point.Z()))/ny
	return y, true
}

func (p Plane) Raycast(origin, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	denom := p.Normal.Dot(dir)
	if denom >= -parallelTolerance {
		return 0, mgl64.Vec3{}, false
	}
	s0 := p.signedDistance(origin)
	if s0 < 0 {
		return 0, mgl64.Vec3{}, false
	}
	t := -s0 / denom
	if t > maxDist {
		return 0, mgl64.Vec3{}, false
	}
	if !p.inBounds(origin.Add(dir.Mul(t))) {
		return 0, mgl64.Vec3{}, false
	}
	return t, p.Normal, true
}

func (p Plane) SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64) (float64, mgl64.Vec3, bool) {
	denom := p.Normal.Dot(dir)
	if denom >= -parallelTolerance {
		return 0, mgl64.Vec3{}, false
	}
	s0 := p.signedDistance(origin)
	if s0 < radius {
		return 0, mgl64.Vec3{}, false
	}
	t := (radius - s0) / denom
	if t > maxDist {
		return 0, mgl64.Vec3{}, false
	}
	contact := origin.Add(dir.Mul(t)).Sub(p.Normal.Mul(radius))
	if !p.inBounds(contact) {
		return 0, mgl64.Vec3{}, false
	}
	return t, p.Normal, true
}

// Collider is a shape placed in the world. Owner carries whatever game
// object the collider belongs to; queries hand it back untouched.
type Collider struct {
	ID      uuid.UUID
	Name    string
	Layer   Layer
	Trigger bool
	Shape   Shape
	Owner   any
}

func NewCollider(name string, layer Layer, shape Shape) *Collider {
	return &Collider{
		ID:    uuid.New(),
		Name:  name,
		Layer: layer,
		Shape: shape,
	}
}

// Hit is the result of a successful ray or sphere query.
type Hit struct {
	Collider *Collider
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

func nearlyZero(v float64) bool {
	return math.Abs(v) <= CollisionAxisTolerance
}
