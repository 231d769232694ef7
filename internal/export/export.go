// Package export writes finished layouts to disk.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roofsolar/planner/internal/cad"
	"github.com/roofsolar/planner/internal/session"
)

// File extensions.
const (
	ExtLISP = ".lsp"
	ExtDXF  = ".dxf"
)

// Config selects where and what to write.
type Config struct {
	OutputDir    string
	StampAddress bool
	DXF          bool
}

// Files lists the paths written by one export. DXF is empty when DXF
// output is disabled.
type Files struct {
	LISP string `json:"lisp"`
	DXF  string `json:"dxf,omitempty"`
}

// Writer exports session layouts into a directory.
type Writer struct {
	cfg Config
	log *slog.Logger
}

// New creates a Writer. An empty output directory means the working
// directory.
func New(cfg Config, log *slog.Logger) *Writer {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if log == nil {
		log = slog.Default()
	}
	return &Writer{cfg: cfg, log: log}
}

// Dir is the output directory.
func (w *Writer) Dir() string {
	return w.cfg.OutputDir
}

// Metadata returns the export metadata of st with the writer's naming
// applied.
func (w *Writer) Metadata(st session.State, at time.Time) (cad.Metadata, error) {
	meta, err := st.Metadata(at)
	if err != nil {
		return cad.Metadata{}, err
	}
	meta.StampAddress = w.cfg.StampAddress
	return meta, nil
}

// Write renders the layout of a complete session and writes the AutoLISP
// script, plus the DXF drawing when enabled. Existing files are replaced.
func (w *Writer) Write(st session.State, at time.Time) (Files, error) {
	meta, err := w.Metadata(st, at)
	if err != nil {
		return Files{}, err
	}

	if err := os.MkdirAll(w.cfg.OutputDir, 0755); err != nil {
		return Files{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	outline, panels, result := st.Outline(), st.Panels(), st.Layout()

	var files Files
	files.LISP = filepath.Join(w.cfg.OutputDir, cad.FileName(meta, ExtLISP))
	script := cad.Emit(outline, panels, result, meta)
	if err := os.WriteFile(files.LISP, []byte(script), 0644); err != nil {
		return Files{}, fmt.Errorf("failed to write script: %w", err)
	}

	if w.cfg.DXF {
		files.DXF = filepath.Join(w.cfg.OutputDir, cad.FileName(meta, ExtDXF))
		if err := cad.SaveDXF(files.DXF, outline, panels, result, meta); err != nil {
			return Files{}, fmt.Errorf("failed to write drawing: %w", err)
		}
	}

	w.log.Info("layout exported",
		"lisp", files.LISP,
		"dxf", files.DXF,
		"panels", result.PanelCount,
		"areaSqMeters", result.AreaSqMeters,
	)
	return files, nil
}
