// Package httpapi is the local HTTP front-end over the extraction handler.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Lllllllleong/pdfextractor/internal/config"
	"github.com/Lllllllleong/pdfextractor/internal/function"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(cfg *config.Config, extractor function.Extractor) http.Handler {
	h := NewHandler(cfg, extractor)
	router := mux.NewRouter()

	// Health and configuration (no auth required)
	router.HandleFunc("/", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/config", h.Config).Methods(http.MethodGet)

	// Extraction routes
	extract := router.PathPrefix("").Subrouter()
	extract.Use(APIKeyMiddleware(cfg.APIKey, extractor))
	extract.HandleFunc("/extract", h.Extract).Methods(http.MethodPost)
	extract.HandleFunc("/extract-lambda", h.ExtractEvent).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(router)
}
