package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lllllllleong/pdfextractor/internal/apperrors"
	"github.com/Lllllllleong/pdfextractor/internal/config"
	"github.com/Lllllllleong/pdfextractor/internal/function"
	"github.com/Lllllllleong/pdfextractor/internal/models"
)

const (
	serviceName    = "pdf-extractor"
	serviceVersion = "1.0.0"
)

// Handler serves the HTTP routes.
type Handler struct {
	cfg       *config.Config
	extractor function.Extractor
	events    *function.EventAdapter
}

// NewHandler creates a handler delegating to extractor.
func NewHandler(cfg *config.Config, extractor function.Extractor) *Handler {
	return &Handler{
		cfg:       cfg,
		extractor: extractor,
		events:    function.NewEventAdapter(extractor, cfg.DocsBucket),
	}
}

// Health reports liveness. It never touches storage.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// Config returns the non-secret configuration.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ConfigResponse{
		Region:          h.cfg.Region,
		DocsBucket:      h.cfg.DocsBucket,
		ExtractedBucket: h.cfg.ExtractedBucket,
		Environment:     string(h.cfg.Environment),
		LogLevel:        h.cfg.LogLevel().String(),
		StorageBackend:  h.cfg.StorageBackend,
	})
}

// Extract handles POST /extract. The HTTP status mirrors the outcome.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, h.extractor.ErrorResponse("", apperrors.Validation("invalid request body", err)))
		return
	}
	if strings.TrimSpace(req.Path) != "" {
		key, err := function.DecodePath(req.Path)
		if err != nil {
			writeResponse(w, h.extractor.ErrorResponse(req.Path, err))
			return
		}
		req.Path = key
	}
	writeResponse(w, h.extractor.Process(r.Context(), req))
}

// ExtractEvent handles POST /extract-lambda. A well-formed event always gets
// a 200 with the outcome in the body, as the function entry does.
func (h *Handler) ExtractEvent(w http.ResponseWriter, r *http.Request) {
	var e models.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeResponse(w, h.extractor.ErrorResponse("", apperrors.Validation("invalid event payload", err)))
		return
	}
	if strings.TrimSpace(e.Path) == "" {
		writeResponse(w, h.extractor.ErrorResponse(e.Path, apperrors.Validation("event is missing the document path", nil)))
		return
	}
	writeJSON(w, http.StatusOK, h.events.HandleEvent(r.Context(), e))
}

func writeResponse(w http.ResponseWriter, resp models.Response) {
	writeJSON(w, resp.HTTPStatus(), resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
