package api

import (
	"net/http"

	"venues-backend/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewHTTPHandler builds the mux used in HTTP mode. Every path except
// /metrics is bridged into h, so both run modes share routing and error
// mapping.
func NewHTTPHandler(h *Handler, collector *metrics.Collector, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}
	router.Handle("/", h)
	router.Handle("/*", h)
	return router
}
