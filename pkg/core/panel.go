// pkg/core/panel.go
package core

// PanelConfig describes a single solar panel and how panels are spaced.
// Dimensions are metres, capacity is watts peak.
type PanelConfig struct {
	Width         float64 `json:"width" mapstructure:"width"`
	Height        float64 `json:"height" mapstructure:"height"`
	Spacing       float64 `json:"spacing" mapstructure:"spacing"`
	EdgeMargin    float64 `json:"edgeMargin" mapstructure:"edgeMargin"`
	CapacityWatts float64 `json:"capacityWatts" mapstructure:"capacityWatts"`
}

// DefaultPanelConfig is the configuration a new session starts with.
var DefaultPanelConfig = PanelConfig{
	Width:         2,
	Height:        1,
	Spacing:       0.1,
	EdgeMargin:    0.5,
	CapacityWatts: 400,
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// PanelLimits holds the input ranges offered to the user. Layout logic never
// relies on them; they exist so shells can clamp form input.
type PanelLimits struct {
	Width         Range `json:"width"`
	Height        Range `json:"height"`
	Spacing       Range `json:"spacing"`
	EdgeMargin    Range `json:"edgeMargin"`
	CapacityWatts Range `json:"capacityWatts"`
}

// DefaultPanelLimits mirrors the ranges of the panel settings form.
var DefaultPanelLimits = PanelLimits{
	Width:         Range{Min: 1, Max: 3},
	Height:        Range{Min: 0.5, Max: 2},
	Spacing:       Range{Min: 0.05, Max: 0.5},
	EdgeMargin:    Range{Min: 0.1, Max: 1},
	CapacityWatts: Range{Min: 200, Max: 600},
}

// Clamp returns cfg with every field limited to its range.
func (l PanelLimits) Clamp(cfg PanelConfig) PanelConfig {
	return PanelConfig{
		Width:         l.Width.Clamp(cfg.Width),
		Height:        l.Height.Clamp(cfg.Height),
		Spacing:       l.Spacing.Clamp(cfg.Spacing),
		EdgeMargin:    l.EdgeMargin.Clamp(cfg.EdgeMargin),
		CapacityWatts: l.CapacityWatts.Clamp(cfg.CapacityWatts),
	}
}

// LayoutResult is the panel estimate derived from an outline and a panel
// configuration. It has no identity of its own and is always recomputed.
type LayoutResult struct {
	AreaSqMeters       float64 `json:"areaSqMeters"`
	PanelCount         int     `json:"panelCount"`
	TotalCapacityWatts float64 `json:"totalCapacityWatts"`
	AnnualProductionWh float64 `json:"annualProductionWh"`
}

// Statistics is the display form of a LayoutResult with explicit units.
type Statistics struct {
	RoofAreaSqMeters    float64 `json:"roofAreaSqMeters"`
	PanelCount          int     `json:"panelCount"`
	TotalCapacityKW     float64 `json:"totalCapacityKw"`
	AnnualProductionKWh float64 `json:"annualProductionKwh"`
}

// Statistics converts watts to kilowatts and watt-hours to kilowatt-hours.
func (r LayoutResult) Statistics() Statistics {
	return Statistics{
		RoofAreaSqMeters:    r.AreaSqMeters,
		PanelCount:          r.PanelCount,
		TotalCapacityKW:     r.TotalCapacityWatts / 1000,
		AnnualProductionKWh: r.AnnualProductionWh / 1000,
	}
}
