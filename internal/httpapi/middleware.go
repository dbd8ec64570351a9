package httpapi

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Lllllllleong/pdfextractor/internal/apperrors"
	"github.com/Lllllllleong/pdfextractor/internal/function"
)

const credentialsMessage = "could not validate credentials"

// APIKeyMiddleware rejects requests whose Authorization header does not equal
// apiKey. An empty apiKey disables the check.
func APIKeyMiddleware(apiKey string, extractor function.Extractor) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("Authorization")
			if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				slog.Warn("Rejected request with invalid API key", "route", r.URL.Path, "remoteAddr", r.RemoteAddr)
				writeResponse(w, extractor.ErrorResponse("", apperrors.Unauthorized(credentialsMessage)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
