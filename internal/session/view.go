package session

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection is returned for an unknown pan direction.
var ErrInvalidDirection = errors.New("invalid pan direction")

// DefaultPanStep is how far one pan moves the map, in degrees.
const DefaultPanStep = 0.002

// ZoomRange bounds the satellite zoom level.
type ZoomRange struct {
	Min     int `json:"min" mapstructure:"min"`
	Max     int `json:"max" mapstructure:"max"`
	Default int `json:"default" mapstructure:"default"`
}

// DefaultZoomRange is building-level satellite zoom.
var DefaultZoomRange = ZoomRange{Min: 15, Max: 21, Default: 19}

// Clamp limits z to the range.
func (r ZoomRange) Clamp(z int) int {
	if z < r.Min {
		return r.Min
	}
	if z > r.Max {
		return r.Max
	}
	return z
}

// Direction is a pan direction.
type Direction string

const (
	PanUp    Direction = "up"
	PanDown  Direction = "down"
	PanLeft  Direction = "left"
	PanRight Direction = "right"
)

// ParseDirection validates a pan direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case PanUp, PanDown, PanLeft, PanRight:
		return d, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidDirection, s)
	}
}

// Zoom changes the zoom level by delta, clamped to the configured range.
// The outline is kept: clicks stay in image pixel space.
func (s State) Zoom(delta int) (State, error) {
	if s.location == nil {
		return s, ErrNoLocation
	}
	s.view.Zoom = s.settings.Zoom.Clamp(s.view.Zoom + delta)
	return s, nil
}

// Pan moves the view centre by one pan step.
func (s State) Pan(dir Direction) (State, error) {
	if s.location == nil {
		return s, ErrNoLocation
	}
	step := s.settings.PanStep
	if step <= 0 {
		step = DefaultPanStep
	}
	switch dir {
	case PanUp:
		s.view.Lat += step
	case PanDown:
		s.view.Lat -= step
	case PanLeft:
		s.view.Lng -= step
	case PanRight:
		s.view.Lng += step
	default:
		return s, fmt.Errorf("%w %q", ErrInvalidDirection, dir)
	}
	return s, nil
}
