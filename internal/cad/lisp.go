package cad

import (
	"fmt"
	"strings"
	"time"

	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/internal/layout"
	"github.com/roofsolar/planner/internal/util"
	"github.com/roofsolar/planner/pkg/core"
)

// Annotation offsets below the first vertex, in drawing units.
const (
	titleOffset    = 50.0
	countOffset    = 70.0
	capacityOffset = 90.0
)

// Emit renders the AutoLISP script.
//
// The outline keeps its pixel coordinates while panel dimensions are in
// metres, exactly as the drawing has always been produced; the DXF output is
// the metric-consistent alternative. Every counted panel is drawn: full rows
// of PanelsPerRow followed by one remainder row.
func Emit(outline core.Outline, cfg core.PanelConfig, result core.LayoutResult, meta Metadata) string {
	cfg = layout.Clearances(cfg)
	first := outline.First()

	var b strings.Builder
	writeHeader(&b, outline, result, meta)

	b.WriteString("(defun c:solar-panel-layout ()\n")
	b.WriteString("  (setq roof-points (list\n")
	for _, p := range outline.Points {
		fmt.Fprintf(&b, "    '(%s %s)\n", util.FormatFixed(p.X, 1), util.FormatFixed(p.Y, 1))
	}
	b.WriteString("  ))\n\n")

	b.WriteString("  ; Draw roof outline\n")
	b.WriteString("  (command \"_PLINE\")\n")
	b.WriteString("  (foreach pt roof-points\n")
	b.WriteString("    (command pt)\n")
	b.WriteString("  )\n")
	b.WriteString("  (command \"_C\")\n\n")

	b.WriteString("  ; Panel specifications\n")
	fmt.Fprintf(&b, "  (setq panel-width %s)\n", util.FormatFloat(cfg.Width))
	fmt.Fprintf(&b, "  (setq panel-height %s)\n", util.FormatFloat(cfg.Height))
	fmt.Fprintf(&b, "  (setq panel-spacing %s)\n", util.FormatFloat(cfg.Spacing))
	fmt.Fprintf(&b, "  (setq border-margin %s)\n\n", util.FormatFloat(cfg.EdgeMargin))

	b.WriteString("  ; Calculate panel positions\n")
	b.WriteString("  (setq panel-count 0)\n")
	b.WriteString("  (setq start-x (+ (caar roof-points) border-margin))\n")
	b.WriteString("  (setq start-y (+ (cadar roof-points) border-margin))\n")
	b.WriteString("  (setq current-y start-y)\n\n")

	full, remainder := layout.Rows(result.PanelCount, meta.perRow())
	if full > 0 {
		b.WriteString("  ; Full rows\n")
		fmt.Fprintf(&b, "  (repeat %d\n", full)
		b.WriteString("    (setq current-x start-x)\n")
		writePanelRow(&b, "    ", meta.perRow())
		b.WriteString("    (setq current-y (+ current-y panel-height panel-spacing))\n")
		b.WriteString("  )\n\n")
	}
	if remainder > 0 {
		b.WriteString("  ; Remainder row\n")
		b.WriteString("  (setq current-x start-x)\n")
		writePanelRow(&b, "  ", remainder)
		b.WriteString("\n")
	}

	b.WriteString("  ; Add text annotations\n")
	writeText(&b, first, titleOffset, "10",
		fmt.Sprintf("(strcat \"Solar Panel Layout - \" %s)", util.LispString(meta.Address)))
	writeText(&b, first, countOffset, "8",
		"(strcat \"Total Panels: \" (itoa panel-count))")
	writeText(&b, first, capacityOffset, "8",
		fmt.Sprintf("(strcat \"Total Capacity: \" %s \"W\")", util.LispString(util.FormatFloat(result.TotalCapacityWatts))))
	b.WriteString("\n")

	b.WriteString("  (princ \"\\nSolar panel layout completed!\")\n")
	b.WriteString("  (princ)\n")
	b.WriteString(")\n\n")
	b.WriteString("; Run the command\n")
	b.WriteString("(c:solar-panel-layout)\n")
	return b.String()
}

func writeHeader(b *strings.Builder, outline core.Outline, result core.LayoutResult, meta Metadata) {
	b.WriteString("; Solar Panel Layout AutoCAD LISP Code\n")
	fmt.Fprintf(b, "; Generated on %s\n", meta.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "; Address: %s\n", util.SingleLine(meta.Address))
	if loc := meta.Location; loc != nil {
		fmt.Fprintf(b, "; Location: %s, %s (EPSG:4326)\n",
			util.FormatFixed(loc.Lat, 6), util.FormatFixed(loc.Lng, 6))
		if x, y, err := geo.MercatorXY(*loc); err == nil {
			fmt.Fprintf(b, "; Web Mercator: %s, %s (EPSG:3857)\n",
				util.FormatFixed(x, 2), util.FormatFixed(y, 2))
		}
	}
	fmt.Fprintf(b, "; Outline: %s\n", geo.WKT(outline.Points))
	fmt.Fprintf(b, "; Roof area: %s m2, panels: %d, capacity: %s W\n\n",
		util.FormatFixed(result.AreaSqMeters, 1), result.PanelCount, util.FormatFloat(result.TotalCapacityWatts))
}

func writePanelRow(b *strings.Builder, indent string, n int) {
	fmt.Fprintf(b, "%s(repeat %d\n", indent, n)
	fmt.Fprintf(b, "%s  (command \"_RECTANGLE\"\n", indent)
	fmt.Fprintf(b, "%s           (list current-x current-y)\n", indent)
	fmt.Fprintf(b, "%s           (list (+ current-x panel-width) (+ current-y panel-height)))\n", indent)
	fmt.Fprintf(b, "%s  (setq current-x (+ current-x panel-width panel-spacing))\n", indent)
	fmt.Fprintf(b, "%s  (setq panel-count (1+ panel-count))\n", indent)
	fmt.Fprintf(b, "%s)\n", indent)
}

func writeText(b *strings.Builder, at core.Point, offset float64, height, expr string) {
	b.WriteString("  (command \"_TEXT\"\n")
	fmt.Fprintf(b, "           (list %s %s)\n", util.FormatFloat(at.X), util.FormatFloat(at.Y-offset))
	fmt.Fprintf(b, "           %q\n", height)
	b.WriteString("           \"0\"\n")
	fmt.Fprintf(b, "           %s\n", expr)
	b.WriteString("  )\n")
}
