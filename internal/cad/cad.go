// Package cad serialises a traced roof outline and its panel layout into
// drawing formats: an AutoLISP script for AutoCAD and a plain DXF file.
//
// Both emitters are pure: identical inputs give byte-identical output, and
// the current time is never read. Callers stamp the generation time through
// Metadata.
package cad

import (
	"time"

	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/internal/layout"
	"github.com/roofsolar/planner/internal/util"
	"github.com/roofsolar/planner/pkg/core"
)

// DefaultFileName is the download name of the AutoLISP export.
const DefaultFileName = "solar-panel-layout.lsp"

// Metadata is the context stamped into an export.
type Metadata struct {
	Address   string
	Timestamp time.Time
	// Location is the geocoded address, if any. It only feeds the header
	// comment.
	Location *core.Location
	// PanelsPerRow is where the panel grid wraps. Zero means
	// layout.DefaultPanelsPerRow.
	PanelsPerRow int
	// MetersPerPixel scales pixel vertices for DXF output. Zero means
	// geo.DefaultMetersPerPixel.
	MetersPerPixel float64
	// StampAddress puts the address into FileName.
	StampAddress bool
}

func (m Metadata) perRow() int {
	if m.PanelsPerRow < 1 {
		return layout.DefaultPanelsPerRow
	}
	return m.PanelsPerRow
}

func (m Metadata) scale() float64 {
	if m.MetersPerPixel <= 0 {
		return geo.DefaultMetersPerPixel
	}
	return m.MetersPerPixel
}

// FileName returns the download name for the given extension (".lsp",
// ".dxf"). With StampAddress set the sanitised address is appended to the
// base name.
func FileName(meta Metadata, ext string) string {
	base := "solar-panel-layout"
	if meta.StampAddress {
		if stem := util.FileStem(meta.Address); stem != "" {
			base += "_" + stem
		}
	}
	if ext == "" {
		ext = ".lsp"
	}
	return base + ext
}
