package capture

import "github.com/roofsolar/planner/pkg/core"

// Status summarises an outline for guidance text.
type Status struct {
	Phase  Phase `json:"phase"`
	Points int   `json:"points"`
	// Missing is how many more vertices are needed before the outline can
	// be closed.
	Missing int `json:"missing"`
	// PixelArea is set once the outline is complete.
	PixelArea float64 `json:"pixelArea"`
}

// Status reports the phase and point count.
func (o Outline) Status() Status {
	s := Status{Phase: o.Phase(), Points: len(o.points)}
	if missing := MinVertices - len(o.points); missing > 0 {
		s.Missing = missing
	}
	if o.complete {
		s.PixelArea = o.PixelArea()
	}
	return s
}

// Guidance maps the status to the next instruction. areaSqMeters is reported
// only for a complete outline.
func (s Status) Guidance(areaSqMeters float64) core.Guidance {
	g := core.Guidance{Points: s.Points, Missing: s.Missing}
	switch {
	case s.Phase == PhaseComplete:
		g.Kind = core.GuidanceOutlineDone
		g.AreaSqMeters = areaSqMeters
	case s.Points == 0:
		g.Kind = core.GuidanceStartOutline
	case s.Points < MinVertices:
		g.Kind = core.GuidanceNeedMore
	default:
		g.Kind = core.GuidanceCloseOutline
	}
	return g
}
