package cad

import (
	"strings"
	"testing"
	"time"

	"github.com/roofsolar/planner/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() (core.Outline, core.PanelConfig, core.LayoutResult, Metadata) {
	outline := core.Outline{
		Points: []core.Point{
			{X: 10, Y: 10},
			{X: 210, Y: 10},
			{X: 210, Y: 210},
			{X: 10, Y: 210},
		},
		Complete: true,
	}
	cfg := core.PanelConfig{Width: 2, Height: 1, Spacing: 0.1, EdgeMargin: 0.5, CapacityWatts: 400}
	result := core.LayoutResult{
		AreaSqMeters:       100,
		PanelCount:         40,
		TotalCapacityWatts: 16000,
		AnnualProductionWh: 19200000,
	}
	meta := Metadata{
		Address:   "서울특별시 중구 세종대로 110",
		Timestamp: time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*3600)),
	}
	return outline, cfg, result, meta
}

func TestEmit_Deterministic(t *testing.T) {
	outline, cfg, result, meta := fixture()
	meta.Location = &core.Location{Address: meta.Address, Lat: 37.5663, Lng: 126.9779}

	first := Emit(outline, cfg, result, meta)
	second := Emit(outline, cfg, result, meta)
	assert.Equal(t, first, second)
}

func TestEmit_Structure(t *testing.T) {
	outline, cfg, result, meta := fixture()
	script := Emit(outline, cfg, result, meta)

	assert.True(t, strings.HasPrefix(script, "; Solar Panel Layout AutoCAD LISP Code\n"))
	assert.Contains(t, script, "; Generated on 2025-03-01T00:30:00Z\n")
	assert.Contains(t, script, "; Address: 서울특별시 중구 세종대로 110\n")
	assert.Contains(t, script, "; Outline: POLYGON((10 10,210 10,210 210,10 210,10 10))\n")
	assert.NotContains(t, script, "EPSG:4326")

	assert.Contains(t, script, "    '(10.0 10.0)\n    '(210.0 10.0)\n    '(210.0 210.0)\n    '(10.0 210.0)\n")
	assert.Contains(t, script, "(command \"_PLINE\")")
	assert.Contains(t, script, "(command \"_C\")")
	assert.Contains(t, script, "(setq panel-width 2)\n")
	assert.Contains(t, script, "(setq panel-height 1)\n")
	assert.Contains(t, script, "(setq panel-spacing 0.1)\n")
	assert.Contains(t, script, "(setq border-margin 0.5)\n")

	// 40 panels, 10 per row: four full rows and no remainder block
	assert.Contains(t, script, "  (repeat 4\n")
	assert.Contains(t, script, "    (repeat 10\n")
	assert.NotContains(t, script, "; Remainder row")

	assert.Contains(t, script, "(list 10 -40)")
	assert.Contains(t, script, "(list 10 -60)")
	assert.Contains(t, script, "(list 10 -80)")
	assert.Contains(t, script, `(strcat "Solar Panel Layout - " "서울특별시 중구 세종대로 110")`)
	assert.Contains(t, script, `(strcat "Total Panels: " (itoa panel-count))`)
	assert.Contains(t, script, `(strcat "Total Capacity: " "16000" "W")`)
	assert.True(t, strings.HasSuffix(script, "; Run the command\n(c:solar-panel-layout)\n"))
}

// parenDepth returns the net parenthesis depth of a line of AutoLISP,
// ignoring string literals and comments, and the lowest depth reached.
func parenDepth(line string) (net, low int) {
	inString, escaped := false, false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case r == ';' && !inString:
			return net, low
		case r == '(' && !inString:
			net++
		case r == ')' && !inString:
			net--
			low = min(low, net)
		}
	}
	return net, low
}

func TestEmit_BalancedParens(t *testing.T) {
	outline, cfg, result, meta := fixture()
	result.PanelCount = 23
	meta.Address = `Roof "A" (north)`

	depth := 0
	for _, line := range strings.Split(Emit(outline, cfg, result, meta), "\n") {
		net, low := parenDepth(line)
		require.GreaterOrEqual(t, depth+low, 0, line)
		depth += net
	}
	assert.Zero(t, depth)
}

func TestEmit_RemainderRow(t *testing.T) {
	outline, cfg, result, meta := fixture()
	result.PanelCount = 23

	script := Emit(outline, cfg, result, meta)
	assert.Contains(t, script, "  (repeat 2\n")
	assert.Contains(t, script, "; Remainder row\n  (setq current-x start-x)\n  (repeat 3\n")
}

func TestEmit_OnlyRemainder(t *testing.T) {
	outline, cfg, result, meta := fixture()
	result.PanelCount = 4
	meta.PanelsPerRow = 5

	script := Emit(outline, cfg, result, meta)
	assert.NotContains(t, script, "; Full rows")
	assert.Contains(t, script, "  (repeat 4\n")
}

func TestEmit_NoPanels(t *testing.T) {
	outline, cfg, _, meta := fixture()
	script := Emit(outline, cfg, core.LayoutResult{}, meta)

	assert.NotContains(t, script, "_RECTANGLE")
	assert.Contains(t, script, `"Total Capacity: " "0" "W"`)
}

func TestEmit_NegativeClearancesAreZero(t *testing.T) {
	outline, cfg, result, meta := fixture()
	cfg.Spacing = -1
	cfg.EdgeMargin = -2

	script := Emit(outline, cfg, result, meta)
	assert.Contains(t, script, "(setq panel-spacing 0)\n")
	assert.Contains(t, script, "(setq border-margin 0)\n")
}

func TestEmit_Georeference(t *testing.T) {
	outline, cfg, result, meta := fixture()
	meta.Location = &core.Location{Lat: 37.5663, Lng: 126.9779}

	script := Emit(outline, cfg, result, meta)
	assert.Contains(t, script, "; Location: 37.566300, 126.977900 (EPSG:4326)\n")
	assert.Regexp(t, `; Web Mercator: 14135\d{3}\.\d{2}, 45183\d{2}\.\d{2} \(EPSG:3857\)\n`, script)

	meta.Location = &core.Location{Lat: 91, Lng: 0}
	assert.NotContains(t, Emit(outline, cfg, result, meta), "EPSG:3857")
}

func TestEmit_SelfIntersectingOutline(t *testing.T) {
	_, cfg, result, meta := fixture()
	bowtie := core.Outline{
		Points:   []core.Point{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 100}},
		Complete: true,
	}

	script := Emit(bowtie, cfg, result, meta)
	assert.Contains(t, script, "; Outline: POLYGON((0 0,100 100,100 0,0 100,0 0))\n")
	assert.NotContains(t, script, "POLYGON EMPTY")
}

func TestEmit_AddressCannotBreakOut(t *testing.T) {
	outline, cfg, result, meta := fixture()
	meta.Address = "line one\n(command \"_ERASE\")"

	script := Emit(outline, cfg, result, meta)
	assert.Contains(t, script, "; Address: line one (command \"_ERASE\")\n")
	assert.Contains(t, script, `"line one (command \"_ERASE\")"`)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, DefaultFileName, FileName(Metadata{}, ".lsp"))
	assert.Equal(t, DefaultFileName, FileName(Metadata{Address: "x"}, ""))
	assert.Equal(t, "solar-panel-layout.dxf", FileName(Metadata{}, ".dxf"))
	assert.Equal(t, "solar-panel-layout_Seoul_City_Hall.lsp",
		FileName(Metadata{Address: "Seoul City Hall", StampAddress: true}, ".lsp"))
	assert.Equal(t, "solar-panel-layout.lsp",
		FileName(Metadata{Address: "///", StampAddress: true}, ".lsp"))
}
