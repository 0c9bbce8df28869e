// Package scene builds the demo level: a floor, a ramp, a few walls and
// the objects the player can use.
package scene

import (
	"log/slog"
	"math"

	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	LayerDefault physics.Layer = 0
	LayerProps   physics.Layer = 1

	rampAngle   = 15.0
	rampStart   = 10.0
	rampEnd     = 20.0
	rampWidth   = 6.0
	rampCenterX = 5.0
	landingLen  = 6.0
)

// Scene holds the level geometry and its interactables.
type Scene struct {
	World  *physics.World
	Note   *Note
	Key    *Pickup
	Exit   *Exit
	Floor  *physics.Collider
	Ramp   *physics.Collider
	Walls  []*physics.Collider
	Props  map[string]*physics.Collider
	Spawn  mgl64.Vec3
	Facing mgl64.Vec3
}

// Build lays the demo level out in world. The player spawns at the
// origin facing +Z with the note straight ahead. The key sits to the
// right of the note, and the ramp beyond it climbs to a landing where the
// exit waits.
func Build(world *physics.World, log *slog.Logger) *Scene {
	if log == nil {
		log = logger.With("scene")
	}
	s := &Scene{
		World:  world,
		Props:  map[string]*physics.Collider{},
		Spawn:  mgl64.Vec3{0, 1, 0},
		Facing: mgl64.Vec3{0, 0, 1},
	}

	s.Floor = world.Add(physics.NewCollider("floor", LayerDefault,
		physics.NewPlane(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, nil)))

	slope := mgl64.DegToRad(rampAngle)
	s.Ramp = world.Add(physics.NewCollider("ramp", LayerDefault,
		physics.NewPlane(
			mgl64.Vec3{rampCenterX, 0, rampStart},
			mgl64.Vec3{0, math.Cos(slope), -math.Sin(slope)},
			&physics.Rect{
				MinX: rampCenterX - rampWidth/2,
				MinZ: rampStart,
				MaxX: rampCenterX + rampWidth/2,
				MaxZ: rampEnd,
			},
		)))

	top := math.Tan(slope) * (rampEnd - rampStart)
	s.Walls = append(s.Walls,
		world.Add(physics.NewCollider("wall_west", LayerDefault,
			physics.BoxAt(mgl64.Vec3{-3, 1.5, 15}, mgl64.Vec3{0.5, 3, 40}))),
		world.Add(physics.NewCollider("wall_east", LayerDefault,
			physics.BoxAt(mgl64.Vec3{11, 1.5, 15}, mgl64.Vec3{0.5, 3, 40}))),
		world.Add(physics.NewCollider("landing", LayerDefault,
			physics.BoxAt(mgl64.Vec3{rampCenterX, top / 2, rampEnd + landingLen/2}, mgl64.Vec3{rampWidth, top, landingLen}))),
	)

	s.Note = &Note{Text: "The key is to your right.", log: log}
	s.addProp("note", s.Note, mgl64.Vec3{0, 1.8, 4}, mgl64.Vec3{1, 0.6, 0.1})

	s.Key = &Pickup{Name: "key", world: world, log: log}
	s.Key.collider = s.addProp("key", s.Key, mgl64.Vec3{5, 1.8, 3.5}, mgl64.Vec3{0.4, 0.4, 0.4})

	s.Exit = &Exit{Key: s.Key, log: log}
	s.addProp("exit", s.Exit, mgl64.Vec3{rampCenterX, top + 1.5, rampEnd + landingLen}, mgl64.Vec3{2, 3, 0.2})

	log.Info("Scene built", "colliders", len(world.Colliders()), "ramp_top", top)
	return s
}

func (s *Scene) addProp(name string, owner any, center, size mgl64.Vec3) *physics.Collider {
	c := physics.NewCollider(name, LayerProps, physics.BoxAt(center, size))
	c.Owner = owner
	s.World.Add(c)
	s.Props[name] = c
	return c
}
