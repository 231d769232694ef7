package server

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"

	"github.com/roofsolar/planner/internal/api"
	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/internal/session"
)

var errUnavailable = errors.New("service not configured")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusOf maps a domain error to an HTTP status code.
func statusOf(err error) int {
	var upstream *api.StatusError
	switch {
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoLocation), errors.Is(err, session.ErrOutlineIncomplete):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, provider.ErrEmptyImage), errors.Is(err, image.ErrFormat):
		return http.StatusBadGateway
	case errors.Is(err, errUnavailable), errors.Is(err, api.ErrMissingKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return upstream.Code
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.log.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
