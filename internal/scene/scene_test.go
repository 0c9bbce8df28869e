package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Versifine/stride/internal/audio"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/host"
	"github.com/Versifine/stride/internal/hud"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

type player struct {
	c         *locomotion.Controller
	body      *physics.Character
	audio     *audio.Player
	crosshair *hud.Image
}

func newPlayer(t *testing.T, world *physics.World, s *Scene, cfg config.PlayerConfig) *player {
	t.Helper()
	p := &player{
		body:      physics.NewCharacter(world, "player", physics.Layer(cfg.Layer), s.Spawn, cfg.Radius, cfg.Height),
		audio:     audio.NewPlayer(audio.Config{}, logger.Discard()),
		crosshair: hud.NewImage(""),
	}
	c, err := locomotion.New(cfg, locomotion.Deps{
		Physics:   world,
		Character: p.body,
		Audio:     p.audio,
		Crosshair: p.crosshair,
		Rand:      rand.New(rand.NewPCG(1, 1)),
		Logger:    logger.Discard(),
	})
	if err != nil {
		t.Fatalf("locomotion.New() error = %v", err)
	}
	p.c = c
	return p
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("../../configs/config.yaml")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func newScene(cfg *config.Config) (*physics.World, *Scene) {
	world := physics.NewWorld(mgl64.Vec3{0, cfg.Simulation.Gravity, 0})
	return world, Build(world, logger.Discard())
}

func TestBuild_Layout(t *testing.T) {
	world, s := newScene(config.Default())

	for _, name := range []string{"note", "key", "exit"} {
		c, ok := s.Props[name]
		if !ok {
			t.Fatalf("prop %s missing", name)
		}
		if _, ok := world.Find(c.ID); !ok {
			t.Fatalf("prop %s not in the world", name)
		}
		if _, ok := c.Owner.(locomotion.Interactable); !ok {
			t.Fatalf("prop %s owner %T is not interactable", name, c.Owner)
		}
	}

	hit, ok := world.SphereCast(mgl64.Vec3{5, 5, 15}, 0.5, mgl64.Vec3{0, -1, 0}, 10, physics.AllLayers, physics.IgnoreTriggers)
	if !ok || hit.Collider != s.Ramp {
		t.Fatalf("probe over the ramp hit %v, want the ramp", hit.Collider)
	}
	if hit.Normal.Y() >= 1 || hit.Normal.Y() < math.Cos(mgl64.DegToRad(rampAngle))-1e-9 {
		t.Fatalf("ramp normal = %v", hit.Normal)
	}
}

func TestNote_TwoWay(t *testing.T) {
	n := &Note{Text: "hello", log: logger.Discard()}
	if !n.IsAvailable() || n.IsOneWay() {
		t.Fatal("note should be an available two-way object")
	}
	n.InteractOn(nil)
	if !n.Reading() || n.Reads() != 1 {
		t.Fatalf("reading=%v reads=%d", n.Reading(), n.Reads())
	}
	n.InteractOff(nil)
	if n.Reading() {
		t.Fatal("still reading after InteractOff")
	}
}

func TestPickup_RemovesItself(t *testing.T) {
	world, s := newScene(config.Default())
	id := s.Props["key"].ID

	s.Key.InteractOn(nil)
	s.Key.InteractOn(nil)

	if !s.Key.Taken() || s.Key.IsAvailable() {
		t.Fatalf("taken=%v available=%v", s.Key.Taken(), s.Key.IsAvailable())
	}
	if _, ok := world.Find(id); ok {
		t.Fatal("key collider still in the world")
	}
}

func TestExit_NeedsKeyAndEndsRun(t *testing.T) {
	cfg := loadConfig(t)
	world, s := newScene(cfg)
	p := newPlayer(t, world, s, cfg.Player)

	if s.Exit.IsAvailable() {
		t.Fatal("exit open before the key was taken")
	}
	s.Key.InteractOn(p.c)
	if !s.Exit.IsAvailable() {
		t.Fatal("exit still closed after taking the key")
	}

	s.Exit.InteractOn(p.c)
	if !p.c.Frozen() || p.c.CanMove() || !s.Exit.Used() {
		t.Fatalf("frozen=%v canMove=%v used=%v", p.c.Frozen(), p.c.CanMove(), s.Exit.Used())
	}
	if s.Exit.IsAvailable() {
		t.Fatal("exit available after use")
	}
}

func TestPlayer_CrosshairOnNote(t *testing.T) {
	cfg := loadConfig(t)
	world, s := newScene(cfg)
	p := newPlayer(t, world, s, cfg.Player)

	p.c.OnMovement(mgl64.Vec2{0, 1})
	for i := 0; i < 40; i++ {
		p.c.Step()
	}

	if p.c.Target() != s.Note {
		t.Fatalf("target = %v, want the note", p.c.Target())
	}
	if p.crosshair.Sprite() != "cross_on" {
		t.Fatalf("crosshair = %q, want cross_on", p.crosshair.Sprite())
	}
	// The note stops the body a half width short of its face.
	if z := p.body.Position().Z(); math.Abs(z-3.45) > 1e-6 {
		t.Fatalf("z = %f, want 3.45", z)
	}
	if !p.body.IsGrounded() {
		t.Fatal("player not grounded on the floor")
	}
}

// TestWalkthrough replays the shipped demo script against the demo scene.
func TestWalkthrough(t *testing.T) {
	cfg := loadConfig(t)
	world, s := newScene(cfg)
	p := newPlayer(t, world, s, cfg.Player)

	script, err := host.LoadScript("../../configs/script.yaml")
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}

	bus := event.NewBus()
	p.c.Bind(bus)

	checks := map[uint64]func(){
		24: func() {
			if p.c.Target() != s.Note {
				t.Errorf("tick 24: target = %v, want the note", p.c.Target())
			}
		},
		25: func() {
			if !s.Note.Reading() || p.c.CanMove() || p.c.Mode() != locomotion.ModeEngaged {
				t.Errorf("tick 25: reading=%v canMove=%v mode=%v", s.Note.Reading(), p.c.CanMove(), p.c.Mode())
			}
		},
		59: func() {
			if z := p.body.Position().Z(); math.Abs(z-2.4) > 1e-6 {
				t.Errorf("tick 59: z = %f, want 2.4 while reading", z)
			}
		},
		60: func() {
			if s.Note.Reading() || !p.c.CanMove() {
				t.Errorf("tick 60: reading=%v canMove=%v", s.Note.Reading(), p.c.CanMove())
			}
		},
		109: func() {
			if p.c.Target() != s.Key {
				t.Errorf("tick 109: target = %v, want the key", p.c.Target())
			}
		},
		110: func() {
			if !s.Key.Taken() {
				t.Error("tick 110: key not taken")
			}
		},
		319: func() {
			if p.c.Target() != s.Exit {
				t.Errorf("tick 319: target = %v at %v, want the exit", p.c.Target(), p.body.Position())
			}
		},
	}

	loop := host.NewLoop(bus, p.c, host.LoopConfig{Ticks: cfg.Simulation.Ticks}).
		WithScript(script).
		WithLogger(logger.Discard()).
		OnTick(func(tick uint64) {
			if check, ok := checks[tick]; ok {
				check()
			}
		})
	if err := loop.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !s.Exit.Used() || !p.c.Frozen() {
		t.Fatalf("exit used=%v frozen=%v", s.Exit.Used(), p.c.Frozen())
	}
	if s.Note.Reads() != 1 {
		t.Fatalf("note read %d times, want 1", s.Note.Reads())
	}

	top := math.Tan(mgl64.DegToRad(rampAngle)) * (rampEnd - rampStart)
	pos := p.body.Position()
	if feet := pos.Y() - cfg.Player.Height/2; math.Abs(feet-top) > 1e-6 {
		t.Fatalf("feet at %f, want on the landing at %f", feet, top)
	}
	if math.Abs(pos.X()-rampCenterX) > 1e-6 {
		t.Fatalf("x = %f, want %f", pos.X(), rampCenterX)
	}
	if p.audio.Played() == 0 {
		t.Fatal("no footsteps played")
	}
}
