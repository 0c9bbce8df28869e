package locomotion

import (
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/hud"
)

// Interactable is implemented by scene objects the player can use. The
// controller never owns one; it only looks them up from ray hits.
type Interactable interface {
	IsAvailable() bool
	// IsOneWay reports whether using the object is a single shot that does
	// not lock the player in place.
	IsOneWay() bool
	InteractOn(c *Controller)
	InteractOff(c *Controller)
}

// Target returns the interactable currently under the crosshair, or nil.
func (c *Controller) Target() Interactable {
	return c.target
}

// scan re-resolves the target from a short ray out of the head and pushes
// the matching crosshair sprite.
func (c *Controller) scan() {
	prev := c.target
	c.target = nil

	hit, ok := c.physics.Raycast(c.HeadPosition(), c.HeadForward(), c.cfg.InteractDistance, c.interactMask)
	if ok && hit.Collider != nil {
		if it, isInteractable := hit.Collider.Owner.(Interactable); isInteractable && it.IsAvailable() {
			c.target = it
		}
	}

	sprite := hud.Sprite(c.cfg.Crosshair.Off)
	if c.target != nil {
		sprite = hud.Sprite(c.cfg.Crosshair.On)
	}
	c.crosshair.SetSprite(sprite)

	if c.target != prev {
		if c.target != nil {
			c.log.Debug("Interactable in range", "collider", hit.Collider.Name, "tick", c.ticks)
		} else {
			c.log.Debug("Interactable out of range", "tick", c.ticks)
		}
	}
}

// OnAction runs the interaction state machine. One-way targets fire
// without touching movement. Two-way targets toggle between Free, where
// the player moves, and Engaged, where movement is locked until the same
// object is used again. While Engaged, the action does nothing until
// the engaged object reports itself available.
func (c *Controller) OnAction(phase event.Phase) {
	if phase != event.PhasePerformed || c.frozen {
		return
	}

	if c.engaged != nil {
		it := c.engaged
		if !it.IsAvailable() {
			return
		}
		c.engaged = nil
		c.canMove = true
		it.InteractOff(c)
		c.log.Info("Interaction released", "tick", c.ticks)
		return
	}

	it := c.target
	if it == nil || !it.IsAvailable() {
		return
	}

	if it.IsOneWay() {
		it.InteractOn(c)
		c.log.Info("Interaction fired", "one_way", true, "tick", c.ticks)
		return
	}

	c.canMove = false
	c.engaged = it
	it.InteractOn(c)
	c.log.Info("Interaction engaged", "tick", c.ticks)
}
