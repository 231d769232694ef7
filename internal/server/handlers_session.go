package server

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/roofsolar/planner/internal/cad"
	"github.com/roofsolar/planner/internal/capture"
	"github.com/roofsolar/planner/internal/export"
	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/internal/session"
	"github.com/roofsolar/planner/internal/util"
	"github.com/roofsolar/planner/pkg/core"
)

// Actions recorded in the layout sink.
const (
	actionClose  = "close"
	actionExport = "export"
)

type locationRequest struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type locationResponse struct {
	Location provider.Result  `json:"location"`
	Session  session.Snapshot `json:"session"`
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type pointResponse struct {
	Transition string           `json:"transition"`
	Session    session.Snapshot `json:"session"`
}

// panelsRequest carries the panel fields a client wants to change.
type panelsRequest struct {
	Width         *float64 `json:"width,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Spacing       *float64 `json:"spacing,omitempty"`
	EdgeMargin    *float64 `json:"edgeMargin,omitempty"`
	CapacityWatts *float64 `json:"capacityWatts,omitempty"`
}

// merge overlays the posted fields on cfg.
func (p panelsRequest) merge(cfg core.PanelConfig) core.PanelConfig {
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{p.Width, &cfg.Width},
		{p.Height, &cfg.Height},
		{p.Spacing, &cfg.Spacing},
		{p.EdgeMargin, &cfg.EdgeMargin},
		{p.CapacityWatts, &cfg.CapacityWatts},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return cfg
}

type viewRequest struct {
	Zoom int    `json:"zoom,omitempty"`
	Pan  string `json:"pan,omitempty"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State().Snapshot())
}

// handleLocation selects the address to trace. Explicit coordinates skip
// resolution.
func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	address := util.CleanAddress(req.Address)

	var res provider.Result
	switch {
	case req.Lat != nil && req.Lng != nil:
		res = provider.Result{
			Location: core.Location{Address: address, Lat: *req.Lat, Lng: *req.Lng},
			Source:   "manual",
		}
	case address == "":
		writeError(w, http.StatusBadRequest, "address or coordinates are required")
		return
	case s.deps.Resolver == nil:
		s.fail(w, r, fmt.Errorf("geocoder: %w", errUnavailable))
		return
	default:
		var err error
		if res, err = s.deps.Resolver.Resolve(r.Context(), address); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	st, id := s.relocate(res.Location)
	s.log.InfoContext(r.Context(), "location selected",
		"session", id,
		"address", res.Address,
		"lat", res.Lat,
		"lng", res.Lng,
		"source", res.Source,
	)
	writeJSON(w, http.StatusOK, locationResponse{Location: res, Session: st.Snapshot()})
}

func (s *Server) handlePoint(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	var tr capture.Transition
	st, id, err := s.update(func(st session.State) (session.State, error) {
		next, t, err := st.Click(core.Point{X: req.X, Y: req.Y})
		tr = t
		return next, err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if tr == capture.TransitionClosed {
		res := st.Layout()
		s.closed.Add(r.Context(), 1)
		s.log.InfoContext(r.Context(), "outline closed",
			"vertices", len(st.Outline().Points),
			"areaSqMeters", res.AreaSqMeters,
			"panels", res.PanelCount,
		)
		s.record(r.Context(), id, actionClose, st)
	}
	writeJSON(w, http.StatusOK, pointResponse{Transition: tr.String(), Session: st.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, _, _ := s.update(func(st session.State) (session.State, error) {
		return st.Reset(), nil
	})
	writeJSON(w, http.StatusOK, st.Snapshot())
}

// handlePanels merges the posted fields into the current panel settings.
func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	var req panelsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	st, _, _ := s.update(func(st session.State) (session.State, error) {
		return st.WithPanels(req.merge(st.Panels())), nil
	})
	writeJSON(w, http.StatusOK, st.Snapshot())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	st, _, err := s.update(func(st session.State) (session.State, error) {
		var err error
		if req.Zoom != 0 {
			if st, err = st.Zoom(req.Zoom); err != nil {
				return st, err
			}
		}
		if req.Pan != "" {
			dir, err := session.ParseDirection(strings.ToLower(req.Pan))
			if err != nil {
				return st, err
			}
			if st, err = st.Pan(dir); err != nil {
				return st, err
			}
		}
		return st, nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Snapshot())
}

// exported renders the export of the current session and marks it exported
// once render succeeds. A failed render leaves the session untouched.
func (s *Server) exported(r *http.Request, render func(session.State, cad.Metadata) error) error {
	at := s.opts.Now().UTC()
	st, id, err := s.update(func(st session.State) (session.State, error) {
		next, err := st.MarkExported()
		if err != nil {
			return st, err
		}
		var meta cad.Metadata
		if s.deps.Exporter != nil {
			meta, err = s.deps.Exporter.Metadata(next, at)
		} else {
			meta, err = next.Metadata(at)
		}
		if err != nil {
			return st, err
		}
		if err := render(next, meta); err != nil {
			return st, err
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	s.exports.Add(r.Context(), 1)
	s.record(r.Context(), id, actionExport, st)
	return nil
}

func attachment(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}

func (s *Server) handleExportLISP(w http.ResponseWriter, r *http.Request) {
	var (
		name   string
		script string
	)
	err := s.exported(r, func(st session.State, meta cad.Metadata) error {
		name = cad.FileName(meta, export.ExtLISP)
		script = cad.Emit(st.Outline(), st.Panels(), st.Layout(), meta)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	attachment(w, name, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(script))
}

func (s *Server) handleExportDXF(w http.ResponseWriter, r *http.Request) {
	var (
		name string
		buf  bytes.Buffer
	)
	err := s.exported(r, func(st session.State, meta cad.Metadata) error {
		name = cad.FileName(meta, export.ExtDXF)
		return cad.WriteDXF(&buf, st.Outline(), st.Panels(), st.Layout(), meta)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	attachment(w, name, "application/dxf")
	_, _ = w.Write(buf.Bytes())
}

// handleExportFiles writes the export into the configured output directory.
func (s *Server) handleExportFiles(w http.ResponseWriter, r *http.Request) {
	if s.deps.Exporter == nil {
		s.fail(w, r, fmt.Errorf("export directory: %w", errUnavailable))
		return
	}
	var files export.Files
	err := s.exported(r, func(st session.State, _ cad.Metadata) error {
		var err error
		files, err = s.deps.Exporter.Write(st, s.opts.Now().UTC())
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}
