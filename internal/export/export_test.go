package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roofsolar/planner/internal/session"
	"github.com/roofsolar/planner/pkg/core"
)

var at = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func traced(t *testing.T) session.State {
	t.Helper()
	s := session.New(session.DefaultSettings()).WithLocation(core.Location{
		Address: "서울특별시 중구 세종대로 110",
		Lat:     37.5663,
		Lng:     126.9779,
	})
	for _, p := range []core.Point{{X: 10, Y: 10}, {X: 210, Y: 10}, {X: 210, Y: 210}, {X: 10, Y: 210}, {X: 12, Y: 12}} {
		var err error
		s, _, err = s.Click(p)
		require.NoError(t, err)
	}
	require.True(t, s.Outline().Complete)
	return s
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	w := New(Config{OutputDir: dir, DXF: true}, nil)

	files, err := w.Write(traced(t), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "solar-panel-layout.lsp"), files.LISP)
	assert.Equal(t, filepath.Join(dir, "solar-panel-layout.dxf"), files.DXF)

	script, err := os.ReadFile(files.LISP)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(script), "; Solar Panel Layout AutoCAD LISP Code\n"))
	assert.Contains(t, string(script), "; Generated on 2025-03-14T09:30:00Z")
	assert.Contains(t, string(script), "(c:solar-panel-layout)")

	drawing, err := os.ReadFile(files.DXF)
	require.NoError(t, err)
	assert.Contains(t, string(drawing), "ROOF")
	assert.Contains(t, string(drawing), "PANELS")
}

func TestWrite_Deterministic(t *testing.T) {
	w := New(Config{OutputDir: t.TempDir()}, nil)
	st := traced(t)

	first, err := w.Write(st, at)
	require.NoError(t, err)
	a, err := os.ReadFile(first.LISP)
	require.NoError(t, err)

	second, err := w.Write(st, at)
	require.NoError(t, err)
	b, err := os.ReadFile(second.LISP)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, a, b)
}

func TestWrite_WithoutDXF(t *testing.T) {
	dir := t.TempDir()
	files, err := New(Config{OutputDir: dir}, nil).Write(traced(t), at)
	require.NoError(t, err)
	assert.Empty(t, files.DXF)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_StampAddress(t *testing.T) {
	dir := t.TempDir()
	files, err := New(Config{OutputDir: dir, StampAddress: true}, nil).Write(traced(t), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "solar-panel-layout_서울특별시_중구_세종대로_110.lsp"), files.LISP)
	assert.FileExists(t, files.LISP)
}

func TestWrite_OutlineIncomplete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	st := session.New(session.DefaultSettings())

	_, err := New(Config{OutputDir: dir}, nil).Write(st, at)
	assert.ErrorIs(t, err, session.ErrOutlineIncomplete)
	assert.NoDirExists(t, dir)
}

func TestNew_Defaults(t *testing.T) {
	w := New(Config{}, nil)
	assert.Equal(t, ".", w.Dir())
	assert.NotNil(t, w.log)
}
