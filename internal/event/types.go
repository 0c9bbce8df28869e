package event

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	EventMovement = "input.movement"
	EventLook     = "input.look"
	EventJump     = "input.jump"
	EventSprint   = "input.sprint"
	EventAction   = "input.action"
)

// Phase mirrors the lifecycle of a button-like action.
type Phase int

const (
	PhaseStarted Phase = iota
	PhasePerformed
	PhaseCanceled
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhasePerformed:
		return "performed"
	case PhaseCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// MovementEvent carries the move axes: X is strafe, Y is forward.
type MovementEvent struct {
	Value mgl64.Vec2
}

type LookEvent struct {
	Delta mgl64.Vec2
}

type JumpEvent struct{}

type SprintEvent struct {
	Pressed bool
}

type ActionEvent struct {
	Phase Phase
}

// ParsePhase accepts the lower-case names produced by Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "started":
		return PhaseStarted, nil
	case "performed", "":
		return PhasePerformed, nil
	case "canceled", "cancelled":
		return PhaseCanceled, nil
	default:
		return 0, fmt.Errorf("unknown action phase %q", s)
	}
}
