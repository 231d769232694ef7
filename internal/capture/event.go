package capture

import "github.com/roofsolar/planner/pkg/core"

// EventKind identifies a pointer input.
type EventKind int

const (
	EventClick EventKind = iota
	EventReset
)

// Event is one user input fed to the state machine.
type Event struct {
	Kind  EventKind
	Point core.Point
}

// Click builds a click event.
func Click(x, y float64) Event {
	return Event{Kind: EventClick, Point: core.Point{X: x, Y: y}}
}

// Apply is the transition function: it consumes one event and returns the
// next outline.
func Apply(o Outline, ev Event) (Outline, Transition) {
	switch ev.Kind {
	case EventReset:
		return o.Reset(), TransitionReset
	case EventClick:
		return o.Add(ev.Point)
	default:
		return o, TransitionIgnored
	}
}

// Replay feeds events to a fresh outline in order.
func Replay(closeRadius float64, events ...Event) Outline {
	o := New(closeRadius)
	for _, ev := range events {
		o, _ = Apply(o, ev)
	}
	return o
}
