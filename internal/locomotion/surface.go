package locomotion

import "github.com/go-gl/mathgl/mgl64"

const normalizeEpsilon = 1e-5

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldDown    = mgl64.Vec3{0, -1, 0}
	localForward = mgl64.Vec3{0, 0, 1}
	localRight   = mgl64.Vec3{1, 0, 0}
)

// ProjectOnPlane removes the component of v along normal, leaving the part
// tangent to the surface. A zero normal leaves v unchanged.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	sqr := normal.LenSqr()
	if sqr < normalizeEpsilon*normalizeEpsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sqr))
}

// Normalize returns v scaled to unit length, or zero when v is too short
// to have a meaningful direction.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < normalizeEpsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func normalize2(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < normalizeEpsilon {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}
