package models

import "net/http"

// These structs define the JSON payloads exchanged with callers of the
// extraction function, whichever front-end they come through.

// ExtractionRequest is the input for a single extraction.
type ExtractionRequest struct {
	Path string `json:"path" validate:"required"`
}

// Response is the outcome of one extraction request: either an
// *ExtractionResult or an *ErrorResponse, never both.
type Response interface {
	HTTPStatus() int
}

// ExtractionResult is returned when a document was extracted and stored.
type ExtractionResult struct {
	Success bool    `json:"success"`
	DocHash string  `json:"docHash"`
	Key     string  `json:"key"`
	DocType DocType `json:"docType"`
}

func (r *ExtractionResult) HTTPStatus() int { return http.StatusOK }

// OriginatingSystem identifies this service in error reports.
const OriginatingSystem = "pdf-extractor"

const (
	DefaultErrorMessage = "no message available"
	DefaultStackTrace   = "no stack trace available"
)

// ErrorResponse is returned whenever an extraction fails.
type ErrorResponse struct {
	Success           bool   `json:"success"`
	Timestamp         string `json:"timestamp"`
	OriginatingSystem string `json:"originatingSystem"`
	Environment       string `json:"environment"`
	LogLevel          string `json:"logLevel"`
	Path              string `json:"path"`
	StatusCode        int    `json:"statusCode"`
	Message           string `json:"message"`
	StackTrace        string `json:"stackTrace"`
}

func (e *ErrorResponse) HTTPStatus() int { return e.StatusCode }

// Event is the payload of a direct, event-driven invocation.
type Event struct {
	Path string `json:"path"`
}

// GCSEvent is the data of a Cloud Storage object.finalize CloudEvent.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// HealthResponse is returned by the liveness endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ConfigResponse exposes the non-secret configuration.
type ConfigResponse struct {
	Region          string `json:"region"`
	DocsBucket      string `json:"docsBucket"`
	ExtractedBucket string `json:"extractedBucket"`
	Environment     string `json:"environment"`
	LogLevel        string `json:"logLevel"`
	StorageBackend  string `json:"storageBackend"`
}
