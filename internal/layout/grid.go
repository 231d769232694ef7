package layout

import (
	"math"

	"github.com/roofsolar/planner/pkg/core"
)

// DefaultPanelsPerRow is where the export grid wraps to the next row.
const DefaultPanelsPerRow = 10

// Placement is one panel rectangle of the export grid.
type Placement struct {
	Row int        `json:"row"`
	Col int        `json:"col"`
	Min core.Point `json:"min"`
	Max core.Point `json:"max"`
}

// Origin is the first panel corner: the outline's first vertex offset by the
// edge margin on both axes.
func Origin(outline core.Outline, cfg core.PanelConfig) core.Point {
	first := outline.First()
	margin := nonNegative(cfg.EdgeMargin)
	return core.Point{X: first.X + margin, Y: first.Y + margin}
}

// Grid lays count panels out row-major from origin. Columns advance by
// width+spacing, rows by height+spacing, and a row wraps after perRow
// panels. The grid ignores the outline boundary; it is a drawing aid, not a
// packing. Negative spacing is treated as zero and perRow < 1 as
// DefaultPanelsPerRow.
func Grid(origin core.Point, count int, cfg core.PanelConfig, perRow int) []Placement {
	if count <= 0 || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}
	if perRow < 1 {
		perRow = DefaultPanelsPerRow
	}
	spacing := nonNegative(cfg.Spacing)
	stepX := cfg.Width + spacing
	stepY := cfg.Height + spacing

	out := make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		row, col := i/perRow, i%perRow
		minPt := core.Point{X: origin.X + float64(col)*stepX, Y: origin.Y + float64(row)*stepY}
		out = append(out, Placement{
			Row: row,
			Col: col,
			Min: minPt,
			Max: core.Point{X: minPt.X + cfg.Width, Y: minPt.Y + cfg.Height},
		})
	}
	return out
}

// Rows splits count into full rows of perRow panels and a remainder.
func Rows(count, perRow int) (full, remainder int) {
	if count <= 0 {
		return 0, 0
	}
	if perRow < 1 {
		perRow = DefaultPanelsPerRow
	}
	return count / perRow, count % perRow
}

// Clearances returns cfg with negative spacing and edge margin replaced by
// zero, as Grid and Origin apply them.
func Clearances(cfg core.PanelConfig) core.PanelConfig {
	cfg.Spacing = nonNegative(cfg.Spacing)
	cfg.EdgeMargin = nonNegative(cfg.EdgeMargin)
	return cfg
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
