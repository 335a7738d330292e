package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/princess-rosella/spu-md5/src/internal/config"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(cfg *config.Config, version VersionInfo, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	if cfg.Server.PrivateOnly {
		r.Use(PrivateSubnetOnly)
	}
	r.Use(CORS)

	h := NewHandler(cfg, version, metrics)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/digest", h.Digest)
		r.With(JSONContentType).Post("/digest/json", h.DigestJSON)

		r.Get("/vectors", h.GetVectors)
		r.Get("/status", h.GetStatus)
		r.Get("/health", h.CheckHealth)
	})

	r.Handle("/metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r.URL.Path)
	})

	return r
}
