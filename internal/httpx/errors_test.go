package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperr.New(apperr.ErrNotFound, "book not found"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("get: %w", apperr.New(apperr.ErrNotFound, "author not found")), http.StatusNotFound, "NOT_FOUND"},
		{"invalid argument", apperr.New(apperr.ErrInvalidArgument, "bad price"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"conflict", apperr.New(apperr.ErrConflict, "name already exists"), http.StatusConflict, "CONFLICT"},
		{"unauthorized", apperr.New(apperr.ErrUnauthorized, "invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"validation", &ValidationError{Details: []ErrorDetail{{Field: "page", Message: "page must be an integer"}}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"opaque", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, httptest.NewRequest(http.MethodGet, "/books/1", nil), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, httptest.NewRequest(http.MethodGet, "/books", nil), errors.New("password=hunter2"))

	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestValidationError_IsInvalidArgument(t *testing.T) {
	err := &ValidationError{Details: []ErrorDetail{{Field: "limit", Message: "limit must be an integer"}}}

	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Equal(t, "limit must be an integer", err.Error())
}

func TestWriteError_KeepsDomainMessage(t *testing.T) {
	w := httptest.NewRecorder()
	err := fmt.Errorf("update book 7: %w", apperr.New(apperr.ErrNotFound, "Author not found"))

	WriteError(w, httptest.NewRequest(http.MethodPut, "/books/7", nil), err)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Author not found", resp.Error.Message)
}
