// Package capture turns pointer clicks on the satellite image into a closed
// roof outline.
//
// An Outline is an immutable value. Add, Reset and Apply return a new
// Outline and leave the receiver untouched, so callers can keep the previous
// state around (undo, diffing) without copying.
package capture

import (
	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/pkg/core"
)

const (
	// DefaultCloseRadius is how close, in pixels, a click must land to the
	// first vertex to close the outline.
	DefaultCloseRadius = 20.0

	// MinVertices is the smallest closable outline.
	MinVertices = 3
)

// Phase is the capture state.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseCollecting
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseCollecting:
		return "collecting"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarshalText lets Phase appear as a string in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Transition reports what a click did.
type Transition int

const (
	// TransitionAppended means the click became a new vertex.
	TransitionAppended Transition = iota
	// TransitionClosed means the click was the closing gesture.
	TransitionClosed
	// TransitionIgnored means the outline was already complete.
	TransitionIgnored
	// TransitionReset means the outline was discarded.
	TransitionReset
)

func (t Transition) String() string {
	switch t {
	case TransitionAppended:
		return "appended"
	case TransitionClosed:
		return "closed"
	case TransitionIgnored:
		return "ignored"
	case TransitionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Outline is the roof boundary being traced.
type Outline struct {
	points      []core.Point
	complete    bool
	closeRadius float64
}

// New returns an empty outline. A non-positive radius falls back to
// DefaultCloseRadius.
func New(closeRadius float64) Outline {
	if closeRadius <= 0 {
		closeRadius = DefaultCloseRadius
	}
	return Outline{closeRadius: closeRadius}
}

// Add handles one click.
//
// A completed outline ignores further clicks. Once at least MinVertices
// points exist, a click within the close radius of the first point completes
// the outline and is not stored as a vertex. Any other click, including one
// near the first point while fewer than MinVertices exist, is appended.
func (o Outline) Add(p core.Point) (Outline, Transition) {
	if o.complete {
		return o, TransitionIgnored
	}
	if len(o.points) >= MinVertices && geo.WithinRadius(p, o.points[0], o.radius()) {
		o.complete = true
		return o, TransitionClosed
	}

	points := make([]core.Point, len(o.points), len(o.points)+1)
	copy(points, o.points)
	o.points = append(points, p)
	return o, TransitionAppended
}

// Reset discards all points. The close radius is kept.
func (o Outline) Reset() Outline {
	return New(o.closeRadius)
}

// Phase returns the current state.
func (o Outline) Phase() Phase {
	switch {
	case o.complete:
		return PhaseComplete
	case len(o.points) == 0:
		return PhaseEmpty
	default:
		return PhaseCollecting
	}
}

// Complete reports whether the closing gesture has been made.
func (o Outline) Complete() bool { return o.complete }

// Len returns the number of vertices.
func (o Outline) Len() int { return len(o.points) }

// CloseRadius returns the closing gesture radius in pixels.
func (o Outline) CloseRadius() float64 { return o.radius() }

// Points returns a copy of the vertices.
func (o Outline) Points() []core.Point {
	out := make([]core.Point, len(o.points))
	copy(out, o.points)
	return out
}

// Snapshot returns a read-only view for consumers outside the package.
func (o Outline) Snapshot() core.Outline {
	return core.Outline{Points: o.Points(), Complete: o.complete}
}

// PixelArea is the shoelace area of the vertices traced so far.
func (o Outline) PixelArea() float64 {
	return geo.Area(o.points)
}

func (o Outline) radius() float64 {
	if o.closeRadius <= 0 {
		return DefaultCloseRadius
	}
	return o.closeRadius
}
