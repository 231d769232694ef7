package server

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Routes wires middlewares and endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		_, _ = w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/healthcheck", s.handleHealthcheck)
		api.Get("/addresses", s.handleAddresses)
		api.Get("/geocode", s.handleGeocode)
		api.Get("/satellite", s.handleSatellite)

		api.Route("/session", func(sr chi.Router) {
			sr.Get("/", s.handleSession)
			sr.Post("/location", s.handleLocation)
			sr.Post("/points", s.handlePoint)
			sr.Post("/reset", s.handleReset)
			sr.Put("/panels", s.handlePanels)
			sr.Post("/view", s.handleView)
			sr.Get("/export.lsp", s.handleExportLISP)
			sr.Get("/export.dxf", s.handleExportDXF)
			sr.Post("/export", s.handleExportFiles)
		})
	})

	return r
}
