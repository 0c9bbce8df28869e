package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// World is a small in-memory collision world. It is not safe for
// concurrent use; the host loop owns it.
type World struct {
	gravity   mgl64.Vec3
	colliders []*Collider
}

func NewWorld(gravity mgl64.Vec3) *World {
	return &World{gravity: gravity}
}

func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

func (w *World) Add(c *Collider) *Collider {
	if c == nil {
		return nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	w.colliders = append(w.colliders, c)
	return c
}

func (w *World) Remove(id uuid.UUID) bool {
	for i, c := range w.colliders {
		if c.ID == id {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Find(id uuid.UUID) (*Collider, bool) {
	for _, c := range w.colliders {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (w *World) Colliders() []*Collider {
	out := make([]*Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// Raycast returns the closest collider hit along dir. Trigger colliders
// are included.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (Hit, bool) {
	dir = safeNormalize(dir)
	if dir.LenSqr() == 0 {
		return Hit{}, false
	}
	return w.closest(mask, HitTriggers, func(s Shape) (float64, mgl64.Vec3, bool) {
		return s.Raycast(origin, dir, maxDist)
	}, func(dist float64) mgl64.Vec3 {
		return origin.Add(dir.Mul(dist))
	})
}

// SphereCast sweeps a sphere of the given radius along dir and returns
// the first contact.
func (w *World) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64, mask LayerMask, triggers TriggerInteraction) (Hit, bool) {
	dir = safeNormalize(dir)
	if dir.LenSqr() == 0 {
		return Hit{}, false
	}
	hit, ok := w.closest(mask, triggers, func(s Shape) (float64, mgl64.Vec3, bool) {
		return s.SweepSphere(origin, radius, dir, maxDist)
	}, func(dist float64) mgl64.Vec3 {
		return origin.Add(dir.Mul(dist))
	})
	if ok {
		hit.Point = hit.Point.Sub(hit.Normal.Mul(radius))
	}
	return hit, ok
}

func (w *World) closest(
	mask LayerMask,
	triggers TriggerInteraction,
	query func(Shape) (float64, mgl64.Vec3, bool),
	pointAt func(float64) mgl64.Vec3,
) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range w.colliders {
		if c.Shape == nil || !mask.Has(c.Layer) {
			continue
		}
		if c.Trigger && triggers == IgnoreTriggers {
			continue
		}
		dist, normal, ok := query(c.Shape)
		if !ok {
			continue
		}
		if found && dist >= best.Distance {
			continue
		}
		best = Hit{Collider: c, Normal: normal, Distance: dist}
		found = true
	}
	if found {
		best.Point = pointAt(best.Distance)
	}
	return best, found
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-5 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
