package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roofsolar/planner/pkg/core"
)

func TestOrigin_OffsetsFirstVertex(t *testing.T) {
	outline := core.Outline{Points: []core.Point{{X: 10, Y: 20}, {X: 50, Y: 20}, {X: 50, Y: 60}}, Complete: true}

	assert.Equal(t, core.Point{X: 10.5, Y: 20.5}, Origin(outline, core.PanelConfig{EdgeMargin: 0.5}))
	assert.Equal(t, core.Point{X: 10, Y: 20}, Origin(outline, core.PanelConfig{EdgeMargin: -1}))
	assert.Equal(t, core.Point{X: 1, Y: 1}, Origin(core.Outline{}, core.PanelConfig{EdgeMargin: 1}))
}

func TestGrid_RowMajorWrap(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1, Spacing: 0.5}
	cells := Grid(core.Point{X: 0, Y: 0}, 5, cfg, 2)

	require.Len(t, cells, 5)
	assert.Equal(t, Placement{Row: 0, Col: 0, Min: core.Point{X: 0, Y: 0}, Max: core.Point{X: 2, Y: 1}}, cells[0])
	assert.Equal(t, Placement{Row: 0, Col: 1, Min: core.Point{X: 2.5, Y: 0}, Max: core.Point{X: 4.5, Y: 1}}, cells[1])
	assert.Equal(t, Placement{Row: 1, Col: 0, Min: core.Point{X: 0, Y: 1.5}, Max: core.Point{X: 2, Y: 2.5}}, cells[2])
	assert.Equal(t, 2, cells[4].Row)
	assert.Equal(t, 0, cells[4].Col)
}

func TestGrid_Degenerate(t *testing.T) {
	cfg := core.PanelConfig{Width: 2, Height: 1}
	assert.Nil(t, Grid(core.Point{}, 0, cfg, 10))
	assert.Nil(t, Grid(core.Point{}, 3, core.PanelConfig{Width: 0, Height: 1}, 10))

	cells := Grid(core.Point{}, 12, cfg, 0)
	require.Len(t, cells, 12)
	assert.Equal(t, 1, cells[10].Row)
}

func TestGrid_NegativeSpacingIsZero(t *testing.T) {
	cells := Grid(core.Point{}, 2, core.PanelConfig{Width: 2, Height: 1, Spacing: -3}, 10)
	require.Len(t, cells, 2)
	assert.Equal(t, 2.0, cells[1].Min.X)
}

func TestRows(t *testing.T) {
	full, rem := Rows(43, 10)
	assert.Equal(t, 4, full)
	assert.Equal(t, 3, rem)

	full, rem = Rows(0, 10)
	assert.Zero(t, full)
	assert.Zero(t, rem)

	full, rem = Rows(7, 0)
	assert.Zero(t, full)
	assert.Equal(t, 7, rem)
}

func TestClearances(t *testing.T) {
	cfg := Clearances(core.PanelConfig{Width: 2, Height: 1, Spacing: -0.1, EdgeMargin: -1, CapacityWatts: 400})
	assert.Zero(t, cfg.Spacing)
	assert.Zero(t, cfg.EdgeMargin)
	assert.Equal(t, 2.0, cfg.Width)
	assert.Equal(t, 400.0, cfg.CapacityWatts)

	cfg = Clearances(core.DefaultPanelConfig)
	assert.Equal(t, core.DefaultPanelConfig, cfg)
}
