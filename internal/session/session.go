// Package session holds the single workbench session of the planner: the
// resolved location, the map view, the traced outline and the panel
// settings.
//
// State is a value. Every update returns a new State and never mutates its
// receiver, so the HTTP shell can swap states under a lock and tests can
// compare before and after.
package session

import (
	"errors"
	"time"

	"github.com/roofsolar/planner/internal/cad"
	"github.com/roofsolar/planner/internal/capture"
	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/internal/layout"
	"github.com/roofsolar/planner/pkg/core"
)

var (
	// ErrNoLocation is returned for operations that need a resolved address.
	ErrNoLocation = errors.New("no location selected")
	// ErrOutlineIncomplete is returned when exporting an open outline.
	ErrOutlineIncomplete = errors.New("roof outline is not complete")
)

// Settings are the fixed parameters of a session.
type Settings struct {
	MetersPerPixel float64
	CloseRadius    float64
	Factors        layout.Factors
	PanelsPerRow   int
	Panels         core.PanelConfig
	Limits         core.PanelLimits
	Zoom           ZoomRange
	PanStep        float64
}

// DefaultSettings returns the planner's built-in settings.
func DefaultSettings() Settings {
	return Settings{
		MetersPerPixel: geo.DefaultMetersPerPixel,
		CloseRadius:    capture.DefaultCloseRadius,
		Factors:        layout.DefaultFactors(),
		PanelsPerRow:   layout.DefaultPanelsPerRow,
		Panels:         core.DefaultPanelConfig,
		Limits:         core.DefaultPanelLimits,
		Zoom:           DefaultZoomRange,
		PanStep:        DefaultPanStep,
	}
}

// clamp limits cfg to the configured ranges. Without limits cfg is kept.
func (st Settings) clamp(cfg core.PanelConfig) core.PanelConfig {
	if st.Limits == (core.PanelLimits{}) {
		return cfg
	}
	return st.Limits.Clamp(cfg)
}

// State is one workbench session.
type State struct {
	settings Settings
	location *core.Location
	view     core.View
	outline  capture.Outline
	panels   core.PanelConfig
	exported bool
}

// New starts an empty session.
func New(settings Settings) State {
	return State{
		settings: settings,
		view:     core.View{Zoom: settings.Zoom.Default},
		outline:  capture.New(settings.CloseRadius),
		panels:   settings.clamp(settings.Panels),
	}
}

// WithLocation selects an address. The view is centred on it at the default
// zoom and any traced outline is discarded, since it belonged to another
// picture.
func (s State) WithLocation(loc core.Location) State {
	s.location = &loc
	s.view = core.View{Lat: loc.Lat, Lng: loc.Lng, Zoom: s.settings.Zoom.Default}
	s.outline = s.outline.Reset()
	s.exported = false
	return s
}

// Click feeds one pointer click on the satellite image to the outline.
func (s State) Click(p core.Point) (State, capture.Transition, error) {
	return s.Apply(capture.Event{Kind: capture.EventClick, Point: p})
}

// Apply feeds a capture event to the outline.
func (s State) Apply(ev capture.Event) (State, capture.Transition, error) {
	if s.location == nil && ev.Kind == capture.EventClick {
		return s, capture.TransitionIgnored, ErrNoLocation
	}
	var tr capture.Transition
	s.outline, tr = capture.Apply(s.outline, ev)
	if tr != capture.TransitionIgnored {
		s.exported = false
	}
	return s, tr, nil
}

// WithPanels replaces the panel settings, clamped to the configured limits.
// Exporting again is required afterwards.
func (s State) WithPanels(cfg core.PanelConfig) State {
	s.panels = s.settings.clamp(cfg)
	s.exported = false
	return s
}

// Reset discards the outline. Location, view and panel settings are kept.
func (s State) Reset() State {
	s.outline = s.outline.Reset()
	s.exported = false
	return s
}

// MarkExported records that the layout was exported.
func (s State) MarkExported() (State, error) {
	if !s.outline.Complete() {
		return s, ErrOutlineIncomplete
	}
	s.exported = true
	return s, nil
}

// Export renders the AutoLISP script of the current layout.
func (s State) Export(at time.Time) (string, error) {
	meta, err := s.Metadata(at)
	if err != nil {
		return "", err
	}
	return cad.Emit(s.outline.Snapshot(), s.panels, s.Layout(), meta), nil
}

// Metadata returns the export metadata of a complete outline.
func (s State) Metadata(at time.Time) (cad.Metadata, error) {
	if !s.outline.Complete() {
		return cad.Metadata{}, ErrOutlineIncomplete
	}
	meta := cad.Metadata{
		Timestamp:      at,
		PanelsPerRow:   s.settings.PanelsPerRow,
		MetersPerPixel: s.settings.MetersPerPixel,
	}
	if s.location != nil {
		loc := *s.location
		meta.Address = loc.Address
		meta.Location = &loc
	}
	return meta, nil
}

// Location returns the selected location, if any.
func (s State) Location() (core.Location, bool) {
	if s.location == nil {
		return core.Location{}, false
	}
	return *s.location, true
}

// View returns the current map window.
func (s State) View() core.View { return s.view }

// Outline returns a snapshot of the traced outline.
func (s State) Outline() core.Outline { return s.outline.Snapshot() }

// Panels returns the panel settings.
func (s State) Panels() core.PanelConfig { return s.panels }

// Settings returns the session parameters.
func (s State) Settings() Settings { return s.settings }

// Exported reports whether the current layout has been exported.
func (s State) Exported() bool { return s.exported }

// Layout recomputes the estimate. An open outline has no layout.
func (s State) Layout() core.LayoutResult {
	if !s.outline.Complete() {
		return core.LayoutResult{}
	}
	area := geo.RealArea(s.outline.Points(), s.settings.MetersPerPixel)
	return layout.EstimateWith(area, s.panels, s.settings.Factors)
}

// Grid returns the export grid of the current layout in the outline's
// coordinate space.
func (s State) Grid() []layout.Placement {
	snap := s.outline.Snapshot()
	origin := layout.Origin(snap, s.panels)
	return layout.Grid(origin, s.Layout().PanelCount, s.panels, s.settings.PanelsPerRow)
}
