package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/pkg/core"
)

// satelliteCacheControl lets browsers keep satellite pictures for a year.
const satelliteCacheControl = "public, max-age=31536000"

// maxImageSide is the largest satellite picture side accepted.
const maxImageSide = 2048

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddresses(w http.ResponseWriter, r *http.Request) {
	if s.deps.Suggester == nil {
		s.fail(w, r, fmt.Errorf("address catalog: %w", errUnavailable))
		return
	}
	locs, err := s.deps.Suggester.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

type geocodeResponse struct {
	Success bool `json:"success"`
	provider.Result
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing address parameter")
		return
	}
	if s.deps.Resolver == nil {
		s.fail(w, r, fmt.Errorf("geocoder: %w", errUnavailable))
		return
	}

	res, err := s.deps.Resolver.Resolve(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, geocodeResponse{Success: true, Result: res})
}

func (s *Server) handleSatellite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lng") == "" {
		writeError(w, http.StatusBadRequest, "missing coordinates")
		return
	}
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	st := s.State()
	req := core.ImageryRequest{
		Lat:    lat,
		Lng:    lng,
		Zoom:   st.Settings().Zoom.Default,
		Width:  s.opts.ImageWidth,
		Height: s.opts.ImageHeight,
	}
	if z := q.Get("zoom"); z != "" {
		zoom, err := strconv.Atoi(z)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid zoom")
			return
		}
		req.Zoom = st.Settings().Zoom.Clamp(zoom)
	}
	if size := q.Get("size"); size != "" {
		width, height, err := parseSize(size)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Width, req.Height = width, height
	}

	if s.deps.Imagery == nil {
		s.fail(w, r, fmt.Errorf("imagery: %w", errUnavailable))
		return
	}
	img, err := s.deps.Imagery.Fetch(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", satelliteCacheControl)
	w.Header().Set("X-Image-Width", strconv.Itoa(img.Width))
	w.Header().Set("X-Image-Height", strconv.Itoa(img.Height))
	_, _ = w.Write(img.Data)
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(size string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q", size)
	}
	width, errW := strconv.Atoi(ws)
	height, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || width < 1 || height < 1 || width > maxImageSide || height > maxImageSide {
		return 0, 0, fmt.Errorf("invalid size %q", size)
	}
	return width, height, nil
}
