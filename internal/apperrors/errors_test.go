package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
	}{
		{"not found", NotFound("document not found", cause), KindNotFound, http.StatusNotFound},
		{"extraction", Extraction("failed to parse PDF", cause), KindExtraction, http.StatusInternalServerError},
		{"validation", Validation("path is required", nil), KindValidation, http.StatusBadRequest},
		{"unauthorized", Unauthorized("could not validate credentials"), KindUnauthorized, http.StatusForbidden},
		{"internal", Internal("storage unavailable", cause), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.status, StatusCode(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
			assert.NotEmpty(t, tt.err.Trace())
		})
	}
}

func TestError_Message(t *testing.T) {
	err := NotFound("document not found", errors.New("object doesn't exist"))
	assert.Equal(t, "document not found: object doesn't exist", err.Error())

	err = Validation("path is required", nil)
	assert.Equal(t, "path is required", err.Error())
}

func TestAs_ThroughWrapping(t *testing.T) {
	inner := Extraction("failed to parse PDF", errors.New("bad xref"))
	wrapped := fmt.Errorf("process: %w", inner)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(wrapped))
	assert.True(t, IsKind(wrapped, KindExtraction))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestStatusCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}

func TestUnwrap_KeepsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("write failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestTrace_ContainsStack(t *testing.T) {
	err := Extraction("failed to parse PDF", errors.New("bad xref"))
	assert.Contains(t, Trace(err), "bad xref")
	assert.Contains(t, Trace(err), "apperrors")
}
