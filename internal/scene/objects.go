package scene

import (
	"log/slog"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/physics"
)

// Note is read in place: using it holds the player still until it is
// put down again.
type Note struct {
	Text string

	reading bool
	reads   int
	log     *slog.Logger
}

func (n *Note) IsAvailable() bool { return true }
func (n *Note) IsOneWay() bool    { return false }

func (n *Note) InteractOn(_ *locomotion.Controller) {
	n.reading = true
	n.reads++
	n.log.Info("Reading note", "text", n.Text)
}

func (n *Note) InteractOff(_ *locomotion.Controller) {
	n.reading = false
	n.log.Info("Put the note down")
}

func (n *Note) Reading() bool { return n.reading }
func (n *Note) Reads() int    { return n.reads }

// Pickup disappears from the world once taken.
type Pickup struct {
	Name string

	world    *physics.World
	collider *physics.Collider
	taken    bool
	log      *slog.Logger
}

func (p *Pickup) IsAvailable() bool { return !p.taken }
func (p *Pickup) IsOneWay() bool    { return true }

func (p *Pickup) InteractOn(_ *locomotion.Controller) {
	if p.taken {
		return
	}
	p.taken = true
	p.world.Remove(p.collider.ID)
	p.log.Info("Picked up item", "item", p.Name)
}

func (p *Pickup) InteractOff(_ *locomotion.Controller) {}

func (p *Pickup) Taken() bool { return p.taken }

// Exit ends the run. A non-nil Key must be taken before the exit opens.
type Exit struct {
	Key *Pickup

	used bool
	log  *slog.Logger
}

func (e *Exit) IsAvailable() bool {
	return !e.used && (e.Key == nil || e.Key.Taken())
}

func (e *Exit) IsOneWay() bool { return true }

func (e *Exit) InteractOn(c *locomotion.Controller) {
	e.used = true
	e.log.Info("Exit reached")
	c.Victory()
}

func (e *Exit) InteractOff(_ *locomotion.Controller) {}

func (e *Exit) Used() bool { return e.used }
