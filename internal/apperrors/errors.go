package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind categorises an application error.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindExtraction   Kind = "extraction"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// Error is an error with a kind, an HTTP-equivalent status code and an
// optional cause. The cause carries a stack trace from the point the error was
// created.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	if root := errors.Cause(e.Cause).Error(); root != e.Message {
		return fmt.Sprintf("%s: %s", e.Message, root)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Trace renders the stack trace recorded with the cause.
func (e *Error) Trace() string {
	if e.Cause == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.Cause)
}

func newError(kind Kind, status int, message string, cause error) *Error {
	if cause == nil {
		cause = errors.New(message)
	} else {
		cause = errors.WithStack(cause)
	}
	return &Error{Kind: kind, Message: message, StatusCode: status, Cause: cause}
}

// NotFound reports a source document that does not exist.
func NotFound(message string, cause error) *Error {
	return newError(KindNotFound, http.StatusNotFound, message, cause)
}

// Extraction reports a document the PDF library could not parse.
func Extraction(message string, cause error) *Error {
	return newError(KindExtraction, http.StatusInternalServerError, message, cause)
}

// Validation reports a malformed request.
func Validation(message string, cause error) *Error {
	return newError(KindValidation, http.StatusBadRequest, message, cause)
}

// Unauthorized reports a request with missing or wrong credentials.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, http.StatusForbidden, message, nil)
}

// Internal reports any other failure, e.g. an unreachable object store.
func Internal(message string, cause error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, message, cause)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// StatusCode returns the status code for err. Errors that are not application
// errors map to 500.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Trace returns the stack trace for err, or "" when none was recorded.
func Trace(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Trace()
	}
	return fmt.Sprintf("%+v", err)
}
