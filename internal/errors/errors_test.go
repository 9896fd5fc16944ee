package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad query")
	assert.Equal(t, "bad query", err.Error())
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing parameter", ErrMissingParameter, http.StatusBadRequest, "MISSING_PARAMETER"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"internal", ErrInternalServer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("date", "date is required")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	assert.Equal(t, ValidationError{Field: "date", Message: "date is required"}, err.Details)
}

func TestNewValidationErrors(t *testing.T) {
	fields := []ValidationError{{Field: "village", Message: "required"}, {Field: "date", Message: "required"}}
	err := NewValidationErrors(fields)

	assert.Equal(t, fields, err.Details)
	assert.Equal(t, "Request validation failed", err.Message)
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("dataset wind")
	assert.Equal(t, "dataset wind not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusUnprocessableEntity, TypeColumnMissing, "Unprocessable Entity", "columns not found", "/api/series/load").
		WithExtension("required", []string{"datetime", "load"}).
		WithExtension("type", "ignored")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeColumnMissing, body["type"])
	assert.Equal(t, float64(422), body["status"])
	assert.Equal(t, "/api/series/load", body["instance"])
	assert.Equal(t, []interface{}{"datetime", "load"}, body["required"])
}

func TestProblemDetails_OmitsEmptyMembers(t *testing.T) {
	data, err := json.Marshal(NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", ""))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotContains(t, body, "detail")
	assert.NotContains(t, body, "instance")
}

func TestAPIErrorsIntegrationWithRender(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/series", nil)

	require.NoError(t, render.Render(w, r, ErrMissingParameter))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "MISSING_PARAMETER", body.ErrorCode)
}
