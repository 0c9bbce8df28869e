package host

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Versifine/stride/internal/event"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrBadCue = errors.New("bad script cue")

// Cue is one scripted input at a given tick. A cue may carry several
// inputs; they are queued in the order move, look, sprint, jump, action.
type Cue struct {
	Tick   uint64      `yaml:"tick"`
	Move   *[2]float64 `yaml:"move,omitempty"`
	Look   *[2]float64 `yaml:"look,omitempty"`
	Sprint *bool       `yaml:"sprint,omitempty"`
	Jump   bool        `yaml:"jump,omitempty"`
	Action *string     `yaml:"action,omitempty"`
}

// Script replays a timeline of input events onto a bus. It stands in for
// a real input device in the headless demo.
type Script struct {
	Cues []Cue `yaml:"cues"`

	next int
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, c := range s.Cues {
		if c.Tick == 0 {
			return nil, fmt.Errorf("%w: cue %d has no tick", ErrBadCue, i)
		}
		if c.Action != nil {
			if _, err := event.ParsePhase(*c.Action); err != nil {
				return nil, fmt.Errorf("%w: cue %d: %v", ErrBadCue, i, err)
			}
		}
	}
	sort.SliceStable(s.Cues, func(i, j int) bool { return s.Cues[i].Tick < s.Cues[j].Tick })
	return s, nil
}

// Emit queues every cue due at or before tick that has not been sent yet
// and returns how many events were queued.
func (s *Script) Emit(tick uint64, bus *event.Bus) int {
	n := 0
	for s.next < len(s.Cues) && s.Cues[s.next].Tick <= tick {
		n += s.Cues[s.next].enqueue(bus)
		s.next++
	}
	return n
}

func (s *Script) Done() bool {
	return s.next >= len(s.Cues)
}

// LastTick is the tick of the final cue, or 0 for an empty script.
func (s *Script) LastTick() uint64 {
	if len(s.Cues) == 0 {
		return 0
	}
	return s.Cues[len(s.Cues)-1].Tick
}

func (c Cue) enqueue(bus *event.Bus) int {
	n := 0
	if c.Move != nil {
		bus.Enqueue(event.EventMovement, event.MovementEvent{Value: mgl64.Vec2(*c.Move)})
		n++
	}
	if c.Look != nil {
		bus.Enqueue(event.EventLook, event.LookEvent{Delta: mgl64.Vec2(*c.Look)})
		n++
	}
	if c.Sprint != nil {
		bus.Enqueue(event.EventSprint, event.SprintEvent{Pressed: *c.Sprint})
		n++
	}
	if c.Jump {
		bus.Enqueue(event.EventJump, event.JumpEvent{})
		n++
	}
	if c.Action != nil {
		// Validated in ParseScript.
		phase, _ := event.ParsePhase(*c.Action)
		bus.Enqueue(event.EventAction, event.ActionEvent{Phase: phase})
		n++
	}
	return n
}
