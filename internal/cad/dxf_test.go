package cad

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roofsolar/planner/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDXF(t *testing.T) {
	outline, cfg, result, meta := fixture()
	meta.Address = "Seoul City Hall"
	path := filepath.Join(t.TempDir(), "roof.dxf")

	require.NoError(t, SaveDXF(path, outline, cfg, result, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, LayerRoof)
	assert.Contains(t, content, LayerPanels)
	assert.Contains(t, content, LayerNotes)
	assert.Contains(t, content, "Solar Panel Layout - Seoul City Hall")
	assert.Contains(t, content, "Total Panels: 40")
	assert.Contains(t, content, "Total Capacity: 16000W")
}

func TestDrawing_LineCount(t *testing.T) {
	outline, cfg, result, meta := fixture()
	result.PanelCount = 3

	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, outline, cfg, result, meta))

	// four outline edges plus four edges per panel
	lines := 0
	for _, l := range strings.Split(strings.ReplaceAll(buf.String(), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) == "LINE" {
			lines++
		}
	}
	assert.Equal(t, 4+3*4, lines)
}

func TestWriteDXF_EmptyOutline(t *testing.T) {
	_, cfg, _, meta := fixture()

	var buf bytes.Buffer
	require.NoError(t, WriteDXF(&buf, core.Outline{}, cfg, core.LayoutResult{}, meta))
	assert.Contains(t, buf.String(), LayerRoof)
}

func TestDrawing_SaveAs(t *testing.T) {
	_, cfg, _, meta := fixture()
	triangle := core.Outline{
		Points:   []core.Point{{X: 10, Y: 10}, {X: 310, Y: 10}, {X: 310, Y: 310}},
		Complete: true,
	}
	result := core.LayoutResult{AreaSqMeters: 112.5, PanelCount: 23, TotalCapacityWatts: 9200}

	d, err := Drawing(triangle, cfg, result, meta)
	require.NoError(t, err)
	require.NotNil(t, d)

	path := filepath.Join(t.TempDir(), "triangle.dxf")
	require.NoError(t, d.SaveAs(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := 0
	for _, l := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) == "LINE" {
			lines++
		}
	}
	assert.Equal(t, 3+23*4, lines)
}
