package physics

const (
	DefaultGravityY = -9.81

	DefaultCharacterRadius = 0.5
	DefaultCharacterHeight = 2.0
	DefaultSlopeLimit      = 45.0 // degrees
	DefaultStepOffset      = 0.3

	// SkinWidth is the contact tolerance used when deciding whether the
	// character rests on a surface.
	SkinWidth              = 0.01
	CollisionAxisTolerance = 1e-9
	parallelTolerance      = 1e-12
)
