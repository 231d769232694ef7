package session

import (
	"github.com/roofsolar/planner/internal/capture"
	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/pkg/core"
)

// Step is the workflow stage shown in the progress bar.
type Step int

const (
	StepAddress Step = iota + 1
	StepOutline
	StepPanels
	StepExport
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepOutline:
		return "outline"
	case StepPanels:
		return "panels"
	case StepExport:
		return "export"
	default:
		return "unknown"
	}
}

// Progress is the step as a percentage.
func (s Step) Progress() int {
	return int(s) * 25
}

// Step returns the current workflow stage.
func (s State) Step() Step {
	switch {
	case s.location == nil:
		return StepAddress
	case !s.outline.Complete():
		return StepOutline
	case !s.exported:
		return StepPanels
	default:
		return StepExport
	}
}

// Guidance returns the next instruction for the user.
func (s State) Guidance() core.Guidance {
	if s.location == nil {
		return core.Guidance{Kind: core.GuidanceEnterAddress}
	}
	status := s.outline.Status()
	g := status.Guidance(geo.ToRealArea(status.PixelArea, s.settings.MetersPerPixel))
	if s.exported && status.Phase == capture.PhaseComplete {
		g.Kind = core.GuidanceExportReady
	}
	g.Address = s.location.Address
	return g
}

// Snapshot is the JSON view of a session.
type Snapshot struct {
	Step       Step              `json:"step"`
	StepName   string            `json:"stepName"`
	Progress   int               `json:"progress"`
	Location   *core.Location    `json:"location,omitempty"`
	View       core.View         `json:"view"`
	Outline    core.Outline      `json:"outline"`
	Status     capture.Status    `json:"status"`
	Panels     core.PanelConfig  `json:"panels"`
	Limits     core.PanelLimits  `json:"limits"`
	Layout     core.LayoutResult `json:"layout"`
	Statistics core.Statistics   `json:"statistics"`
	Guidance   core.Guidance     `json:"guidance"`
	Exported   bool              `json:"exported"`
	ZoomRange  ZoomRange         `json:"zoomRange"`
}

// Snapshot captures the session for rendering.
func (s State) Snapshot() Snapshot {
	res := s.Layout()
	snap := Snapshot{
		Step:       s.Step(),
		StepName:   s.Step().String(),
		Progress:   s.Step().Progress(),
		View:       s.view,
		Outline:    s.outline.Snapshot(),
		Status:     s.outline.Status(),
		Panels:     s.panels,
		Limits:     s.settings.Limits,
		Layout:     res,
		Statistics: res.Statistics(),
		Guidance:   s.Guidance(),
		Exported:   s.exported,
		ZoomRange:  s.settings.Zoom,
	}
	if loc, ok := s.Location(); ok {
		snap.Location = &loc
	}
	return snap
}
