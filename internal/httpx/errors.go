package httpx

import (
	"errors"
	"net/http"

	"bookcatalog/internal/platform/apperr"

	"go.uber.org/zap"
)

// ValidationError reports malformed request input field by field.
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 1 {
		return e.Details[0].Message
	}
	return "invalid input"
}

func (e *ValidationError) Unwrap() error { return apperr.ErrInvalidArgument }

// WriteError maps err onto the error envelope. Errors without a known kind
// are logged and reported as 500 without leaking their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", vErr.Details)
		return
	}

	switch apperr.KindOf(err) {
	case apperr.ErrNotFound:
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", publicMessage(err), nil)
	case apperr.ErrInvalidArgument:
		JSONError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", publicMessage(err), nil)
	case apperr.ErrConflict:
		JSONError(w, r, http.StatusConflict, "CONFLICT", publicMessage(err), nil)
	case apperr.ErrUnauthorized:
		JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", publicMessage(err), nil)
	default:
		LoggerFrom(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// publicMessage drops the wrapping context added on the way up and keeps
// the domain message.
func publicMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
