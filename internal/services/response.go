package services

import (
	"time"

	"github.com/Lllllllleong/pdfextractor/internal/apperrors"
	"github.com/Lllllllleong/pdfextractor/internal/config"
	"github.com/Lllllllleong/pdfextractor/internal/models"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse converts err into the error payload returned to callers.
func (f *ExtractorFunction) ErrorResponse(path string, err error) *models.ErrorResponse {
	return NewErrorResponse(f.config, path, err, f.now())
}

// NewErrorResponse builds the error payload for err. It is used directly by
// adapters that reject a request before it reaches the extractor.
func NewErrorResponse(cfg *config.Config, path string, err error, at time.Time) *models.ErrorResponse {
	message, trace := "", ""
	if err != nil {
		message = err.Error()
		trace = apperrors.Trace(err)
	}
	if message == "" {
		message = models.DefaultErrorMessage
	}
	if trace == "" {
		trace = models.DefaultStackTrace
	}

	return &models.ErrorResponse{
		Success:           false,
		Timestamp:         at.UTC().Format(timestampLayout),
		OriginatingSystem: models.OriginatingSystem,
		Environment:       string(cfg.Environment),
		LogLevel:          cfg.LogLevel().String(),
		Path:              path,
		StatusCode:        apperrors.StatusCode(err),
		Message:           message,
		StackTrace:        trace,
	}
}
