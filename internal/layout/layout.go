// Package layout estimates how many solar panels fit on a roof.
//
// The roof area is derated by a fixed efficiency factor standing in for
// margins and obstructions, then divided by the area of one panel. No row/column packing inside the irregular
// outline is attempted.
package layout

import (
	"math"

	"github.com/roofsolar/planner/pkg/core"
)

const (
	// DefaultEfficiencyFactor is the share of roof area assumed usable.
	DefaultEfficiencyFactor = 0.8

	// DefaultAnnualYieldFactor is the yearly energy per installed watt, in
	// watt-hours per watt-peak (equivalently kWh per kWp). Capacity in W
	// times this factor gives Wh per year.
	DefaultAnnualYieldFactor = 1200.0
)

// Factors are the fixed derating and yield constants of the estimate.
type Factors struct {
	Efficiency  float64 `json:"efficiency" mapstructure:"efficiencyFactor"`
	AnnualYield float64 `json:"annualYield" mapstructure:"annualYieldFactor"`
}

// DefaultFactors returns the factors the planner ships with.
func DefaultFactors() Factors {
	return Factors{
		Efficiency:  DefaultEfficiencyFactor,
		AnnualYield: DefaultAnnualYieldFactor,
	}
}

// Estimate derives a layout with the default factors.
func Estimate(areaSqMeters float64, cfg core.PanelConfig) core.LayoutResult {
	return EstimateWith(areaSqMeters, cfg, DefaultFactors())
}

// EstimateWith derives panel count, capacity and annual production.
//
// Degenerate input never faults. A non-positive area, panel area or
// efficiency yields zero panels, and a non-positive capacity yields zero
// capacity and production whatever the count. Counts too large for an int
// saturate at math.MaxInt.
func EstimateWith(areaSqMeters float64, cfg core.PanelConfig, f Factors) core.LayoutResult {
	res := core.LayoutResult{AreaSqMeters: finiteOrZero(math.Max(areaSqMeters, 0))}

	panelArea := cfg.Width * cfg.Height
	if cfg.Width <= 0 || cfg.Height <= 0 || panelArea <= 0 || res.AreaSqMeters <= 0 || f.Efficiency <= 0 {
		return res
	}

	effectiveArea := res.AreaSqMeters * f.Efficiency
	count := math.Floor(effectiveArea / panelArea)
	switch {
	case math.IsNaN(count) || count <= 0:
		return res
	case count >= math.MaxInt:
		res.PanelCount = math.MaxInt
	default:
		res.PanelCount = int(count)
	}

	if cfg.CapacityWatts <= 0 {
		return res
	}
	res.TotalCapacityWatts = float64(res.PanelCount) * cfg.CapacityWatts
	if f.AnnualYield > 0 {
		res.AnnualProductionWh = finiteOrZero(res.TotalCapacityWatts * f.AnnualYield)
	}
	return res
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
