// Package function adapts platform invocations to the extraction handler.
package function

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/pdfextractor/internal/apperrors"
	"github.com/Lllllllleong/pdfextractor/internal/models"
)

// Extractor is the extraction handler the adapter delegates to.
type Extractor interface {
	Process(ctx context.Context, req models.ExtractionRequest) models.Response
	ErrorResponse(path string, err error) *models.ErrorResponse
}

// EventAdapter maps invocation events onto the extractor and its results back
// onto the response shape. It holds no business logic.
type EventAdapter struct {
	extractor  Extractor
	docsBucket string
}

// NewEventAdapter creates an adapter. Storage events for buckets other than
// docsBucket are ignored.
func NewEventAdapter(extractor Extractor, docsBucket string) *EventAdapter {
	return &EventAdapter{extractor: extractor, docsBucket: docsBucket}
}

// DecodePath percent-decodes a document key sent by a caller. Keys arriving
// from HTTP tooling are often encoded.
func DecodePath(raw string) (string, error) {
	key, err := url.PathUnescape(raw)
	if err != nil {
		return "", apperrors.Validation(fmt.Sprintf("invalid document path %q", raw), err)
	}
	return key, nil
}

// HandleEvent runs one extraction for a direct invocation event. The path is
// percent-decoded before it is looked up.
func (a *EventAdapter) HandleEvent(ctx context.Context, e models.Event) models.Response {
	if strings.TrimSpace(e.Path) == "" {
		return a.extractor.ErrorResponse(e.Path, apperrors.Validation("event is missing the document path", nil))
	}
	key, err := DecodePath(e.Path)
	if err != nil {
		return a.extractor.ErrorResponse(e.Path, err)
	}
	return a.extractor.Process(ctx, models.ExtractionRequest{Path: key})
}

// ServeHTTP is the entry for direct invocations. The outcome is carried in
// the body; the HTTP status is always 200.
func (a *EventAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var e models.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		slog.Warn("Failed to decode invocation event", "error", err)
		writeJSON(w, a.extractor.ErrorResponse("", apperrors.Validation("invalid event payload", err)))
		return
	}
	writeJSON(w, a.HandleEvent(r.Context(), e))
}

// HandleCloudEvent handles a Cloud Storage object.finalize event. Failures
// are logged and never returned, so the platform does not retry them.
func (a *EventAdapter) HandleCloudEvent(ctx context.Context, e cloudevents.Event) error {
	var gcsEvent models.GCSEvent
	if err := e.DataAs(&gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return nil
	}

	logCtx := slog.With("eventId", e.ID(), "gcsBucket", gcsEvent.Bucket, "gcsObject", gcsEvent.Name)
	if gcsEvent.Bucket != a.docsBucket {
		logCtx.Info("Event is for another bucket. Skipping.")
		return nil
	}

	// Object names in storage events are raw keys and must not be decoded.
	switch resp := a.extractor.Process(ctx, models.ExtractionRequest{Path: gcsEvent.Name}).(type) {
	case *models.ExtractionResult:
		logCtx.Info("Extraction complete.", "docHash", resp.DocHash, "key", resp.Key, "docType", resp.DocType)
	case *models.ErrorResponse:
		logCtx.Error("Extraction failed.", "statusCode", resp.StatusCode, "message", resp.Message)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
