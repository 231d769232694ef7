package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roofsolar/planner/pkg/core"
)

func TestEstimate_ReferenceRoof(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, Spacing: 0, EdgeMargin: 0, CapacityWatts: 400}

	res := EstimateWith(100, cfg, Factors{Efficiency: 0.8, AnnualYield: DefaultAnnualYieldFactor})

	assert.Equal(t, 100.0, res.AreaSqMeters)
	assert.Equal(t, 40, res.PanelCount)
	assert.Equal(t, 16000.0, res.TotalCapacityWatts)
	// 16 kWp at 1200 kWh/kWp is 19.2 MWh per year
	assert.Equal(t, 19_200_000.0, res.AnnualProductionWh)
}

func TestEstimate_UsesDefaultFactors(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 400}
	assert.Equal(t, EstimateWith(100, cfg, DefaultFactors()), Estimate(100, cfg))
}

func TestEstimate_FloorsPartialPanels(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 300}
	res := Estimate(10, cfg) // 8 m2 effective -> 4 panels

	assert.Equal(t, 4, res.PanelCount)

	res = Estimate(9.9, cfg) // 7.92 m2 effective -> 3 panels
	assert.Equal(t, 3, res.PanelCount)
	assert.Equal(t, 900.0, res.TotalCapacityWatts)
}

func TestEstimate_ZeroCapacity(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 0}
	res := Estimate(100, cfg)

	assert.Equal(t, 40, res.PanelCount)
	assert.Equal(t, 0.0, res.TotalCapacityWatts)
	assert.Equal(t, 0.0, res.AnnualProductionWh)
}

func TestEstimate_HugeRoofSaturates(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 400}

	res := Estimate(1e10, cfg)
	assert.Equal(t, 4_000_000_000, res.PanelCount)
	assert.Equal(t, 1.6e12, res.TotalCapacityWatts)

	res = EstimateWith(1e300, core.PanelConfig{Width: 1e-10, Height: 1e-10, CapacityWatts: 400}, DefaultFactors())
	assert.Equal(t, math.MaxInt, res.PanelCount)
	assert.Greater(t, res.TotalCapacityWatts, 0.0)
}

func TestEstimate_DegenerateInputs(t *testing.T) {
	good := core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 400}

	cases := map[string]struct {
		area float64
		cfg  core.PanelConfig
		f    Factors
	}{
		"zero area":       {0, good, DefaultFactors()},
		"negative area":   {-50, good, DefaultFactors()},
		"nan area":        {math.NaN(), good, DefaultFactors()},
		"zero width":      {100, core.PanelConfig{Width: 0, Height: 1, CapacityWatts: 400}, DefaultFactors()},
		"negative height": {100, core.PanelConfig{Width: 2, Height: -1, CapacityWatts: 400}, DefaultFactors()},
		"both negative":   {100, core.PanelConfig{Width: -2, Height: -1, CapacityWatts: 400}, DefaultFactors()},
		"zero efficiency": {100, good, Factors{Efficiency: 0, AnnualYield: 1200}},
		"infinite area":   {math.Inf(1), good, DefaultFactors()},
		"all zero config": {100, core.PanelConfig{}, DefaultFactors()},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := EstimateWith(tc.area, tc.cfg, tc.f)
			assert.Equal(t, 0, res.PanelCount)
			assert.Equal(t, 0.0, res.TotalCapacityWatts)
			assert.Equal(t, 0.0, res.AnnualProductionWh)
			assert.False(t, math.IsNaN(res.AreaSqMeters))
		})
	}
}

func TestEstimate_StatisticsUnits(t *testing.T) {
	res := Estimate(100, core.PanelConfig{Width: 2, Height: 1, CapacityWatts: 400})
	stats := res.Statistics()

	assert.Equal(t, 16.0, stats.TotalCapacityKW)
	assert.Equal(t, 19200.0, stats.AnnualProductionKWh)
	assert.Equal(t, 40, stats.PanelCount)
}
