// Package locomotion turns player input into first-person movement, look,
// footstep audio and interaction targeting for a single character.
//
// A Controller is driven from one goroutine: input handlers are called as
// events arrive and Step is called once per fixed physics step.
package locomotion

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/hud"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrFootstepPool      = errors.New("footstep pool needs at least two clips")
)

// Physics is the query side of the physics service.
type Physics interface {
	Gravity() mgl64.Vec3
	SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask, triggers physics.TriggerInteraction) (physics.Hit, bool)
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask) (physics.Hit, bool)
}

// Character is the collision-resolving mover carrying the player.
type Character interface {
	Position() mgl64.Vec3
	Radius() float64
	Height() float64
	Layer() physics.Layer
	IsGrounded() bool
	Move(disp mgl64.Vec3)
}

type AudioSource interface {
	PlayOneShot(clip audio.Clip)
}

type Crosshair interface {
	SetSprite(s hud.Sprite)
}

// Deps are the collaborators a Controller needs. Rand and Logger are
// optional.
type Deps struct {
	Physics   Physics
	Character Character
	Audio     AudioSource
	Crosshair Crosshair
	Rand      *rand.Rand
	Logger    *slog.Logger
}

// Mode is the interaction state of the controller.
type Mode int

const (
	ModeFree Mode = iota
	ModeEngaged
)

func (m Mode) String() string {
	if m == ModeEngaged {
		return "engaged"
	}
	return "free"
}

// State is a read-only snapshot for logging and tests.
type State struct {
	Position      mgl64.Vec3
	VerticalSpeed float64
	Intent        mgl64.Vec2
	Sprinting     bool
	CanMove       bool
	Frozen        bool
	Grounded      bool
	HeadPitch     float64
	Mode          Mode
	HasTarget     bool
	Tick          uint64
}

type Controller struct {
	cfg       config.PlayerConfig
	physics   Physics
	body      Character
	audio     AudioSource
	crosshair Crosshair
	log       *slog.Logger

	verticalSpeed float64
	intent        mgl64.Vec2
	sprinting     bool
	canMove       bool
	frozen        bool
	rotation      mgl64.Quat
	headPitch     float64

	steps *footsteps

	interactMask physics.LayerMask
	target       Interactable
	engaged      Interactable

	ticks uint64
}

func New(cfg config.PlayerConfig, deps Deps) (*Controller, error) {
	switch {
	case deps.Physics == nil:
		return nil, fmt.Errorf("%w: physics", ErrMissingDependency)
	case deps.Character == nil:
		return nil, fmt.Errorf("%w: character", ErrMissingDependency)
	case deps.Audio == nil:
		return nil, fmt.Errorf("%w: audio", ErrMissingDependency)
	case deps.Crosshair == nil:
		return nil, fmt.Errorf("%w: crosshair", ErrMissingDependency)
	}

	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	steps, err := newFootsteps(cfg.Footsteps, rng)
	if err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = logger.With("locomotion")
	}

	c := &Controller{
		cfg:          cfg,
		physics:      deps.Physics,
		body:         deps.Character,
		audio:        deps.Audio,
		crosshair:    deps.Crosshair,
		log:          log,
		canMove:      true,
		rotation:     mgl64.QuatIdent(),
		steps:        steps,
		interactMask: physics.AllLayers.Without(deps.Character.Layer()),
	}
	c.crosshair.SetSprite(hud.Sprite(cfg.Crosshair.Off))
	return c, nil
}

// Bind subscribes the input handlers to the bus.
func (c *Controller) Bind(bus *event.Bus) {
	bus.Subscribe(event.EventMovement, func(raw any) {
		if evt, ok := raw.(event.MovementEvent); ok {
			c.OnMovement(evt.Value)
		}
	})
	bus.Subscribe(event.EventLook, func(raw any) {
		if evt, ok := raw.(event.LookEvent); ok {
			c.OnLook(evt.Delta)
		}
	})
	bus.Subscribe(event.EventJump, func(raw any) {
		if _, ok := raw.(event.JumpEvent); ok {
			c.OnJump()
		}
	})
	bus.Subscribe(event.EventSprint, func(raw any) {
		if evt, ok := raw.(event.SprintEvent); ok {
			c.OnSprint(evt.Pressed)
		}
	})
	bus.Subscribe(event.EventAction, func(raw any) {
		if evt, ok := raw.(event.ActionEvent); ok {
			c.OnAction(evt.Phase)
		}
	})
}

// OnMovement stores the move axes. It is accepted even while movement is
// disabled so the intent is current once movement resumes.
func (c *Controller) OnMovement(v mgl64.Vec2) {
	c.intent = normalize2(v)
}

func (c *Controller) OnJump() {
	if c.canMove && c.body.IsGrounded() {
		c.verticalSpeed = c.cfg.JumpForce
	}
}

func (c *Controller) OnSprint(pressed bool) {
	c.sprinting = pressed
}

// Step advances the controller by one fixed physics step.
func (c *Controller) Step() {
	c.ticks++
	if !c.canMove {
		return
	}

	start := c.body.Position()
	c.move()

	if c.body.IsGrounded() {
		moved := start.Sub(c.body.Position()).LenSqr()
		if clip, ok := c.steps.advance(moved, c.sprinting); ok {
			c.audio.PlayOneShot(clip)
			c.log.Debug("Footstep", "clip", clip.Name, "sprinting", c.sprinting, "tick", c.ticks)
		}
	}

	c.scan()
}

// Victory freezes the player for good. Nothing re-enables movement
// afterwards.
func (c *Controller) Victory() {
	if c.frozen {
		return
	}
	c.frozen = true
	c.canMove = false
	c.log.Info("Victory, movement frozen", "tick", c.ticks)
}

func (c *Controller) CanMove() bool { return c.canMove }

func (c *Controller) Frozen() bool { return c.frozen }

func (c *Controller) Mode() Mode {
	if c.engaged != nil {
		return ModeEngaged
	}
	return ModeFree
}

func (c *Controller) State() State {
	return State{
		Position:      c.body.Position(),
		VerticalSpeed: c.verticalSpeed,
		Intent:        c.intent,
		Sprinting:     c.sprinting,
		CanMove:       c.canMove,
		Frozen:        c.frozen,
		Grounded:      c.body.IsGrounded(),
		HeadPitch:     c.headPitch,
		Mode:          c.Mode(),
		HasTarget:     c.target != nil,
		Tick:          c.ticks,
	}
}
