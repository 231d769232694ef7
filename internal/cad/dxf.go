package cad

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/internal/layout"
	"github.com/roofsolar/planner/internal/util"
	"github.com/roofsolar/planner/pkg/core"
)

// DXF layer names.
const (
	LayerRoof   = "ROOF"
	LayerPanels = "PANELS"
	LayerNotes  = "NOTES"
)

// Text heights in metres.
const (
	titleHeight = 0.5
	noteHeight  = 0.4
)

// Drawing builds the DXF drawing. Outline vertices are scaled to metres
// with meta.MetersPerPixel and the image Y axis is flipped so the drawing
// reads like the satellite picture. Panels are drawn as closed rectangles
// on the PANELS layer, one per counted panel.
func Drawing(outline core.Outline, cfg core.PanelConfig, result core.LayoutResult, meta Metadata) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerRoof, color.Red},
		{LayerPanels, color.Cyan},
		{LayerNotes, color.White},
	} {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, true); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	metric := geo.Scale(outline.Points, meta.scale())
	for i := range metric {
		metric[i].Y = -metric[i].Y
	}

	if err := d.ChangeLayer(LayerRoof); err != nil {
		return nil, err
	}
	if err := polyline(d, metric); err != nil {
		return nil, fmt.Errorf("failed to draw outline: %w", err)
	}

	if err := d.ChangeLayer(LayerPanels); err != nil {
		return nil, err
	}
	origin := core.Point{}
	if len(metric) > 0 {
		origin = metric[0]
	}
	cfg = layout.Clearances(cfg)
	origin.X += cfg.EdgeMargin
	origin.Y -= cfg.EdgeMargin
	for _, cell := range layout.Grid(core.Point{}, result.PanelCount, cfg, meta.perRow()) {
		// grid rows grow downwards
		rect := []core.Point{
			{X: origin.X + cell.Min.X, Y: origin.Y - cell.Min.Y},
			{X: origin.X + cell.Max.X, Y: origin.Y - cell.Min.Y},
			{X: origin.X + cell.Max.X, Y: origin.Y - cell.Max.Y},
			{X: origin.X + cell.Min.X, Y: origin.Y - cell.Max.Y},
		}
		if err := polyline(d, rect); err != nil {
			return nil, fmt.Errorf("failed to draw panel %d,%d: %w", cell.Row, cell.Col, err)
		}
	}

	if err := d.ChangeLayer(LayerNotes); err != nil {
		return nil, err
	}
	notes := []struct {
		text   string
		height float64
	}{
		{"Solar Panel Layout - " + util.SingleLine(meta.Address), titleHeight},
		{fmt.Sprintf("Total Panels: %d", result.PanelCount), noteHeight},
		{"Total Capacity: " + util.FormatFloat(result.TotalCapacityWatts) + "W", noteHeight},
	}
	base := core.Point{}
	if len(metric) > 0 {
		base = metric[0]
	}
	for i, n := range notes {
		y := base.Y + 2.5 + float64(len(notes)-i)*1.0
		if _, err := d.Text(n.text, base.X, y, 0, n.height); err != nil {
			return nil, fmt.Errorf("failed to write note: %w", err)
		}
	}
	return d, nil
}

// SaveDXF writes the drawing to path.
func SaveDXF(path string, outline core.Outline, cfg core.PanelConfig, result core.LayoutResult, meta Metadata) error {
	d, err := Drawing(outline, cfg, result, meta)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dxf: %w", err)
	}
	return nil
}

// WriteDXF streams the drawing to w. The dxf package only writes files, so
// the drawing goes through a temporary file.
func WriteDXF(w io.Writer, outline core.Outline, cfg core.PanelConfig, result core.LayoutResult, meta Metadata) error {
	dir, err := os.MkdirTemp("", "roofsolar-dxf")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, FileName(Metadata{}, ".dxf"))
	if err := SaveDXF(path, outline, cfg, result, meta); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dxf: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy dxf: %w", err)
	}
	return nil
}

func polyline(d *drawing.Drawing, points []core.Point) error {
	if len(points) < 2 {
		return nil
	}
	for i, p := range points {
		q := points[(i+1)%len(points)]
		if _, err := d.Line(p.X, p.Y, 0, q.X, q.Y, 0); err != nil {
			return err
		}
	}
	return nil
}
