package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("ward not found"), http.StatusNotFound},
		{"invalid", apperr.Invalid("name is required"), http.StatusUnprocessableEntity},
		{"conflict", apperr.Conflict("bed is already occupied"), http.StatusConflict},
		{"unavailable", apperr.Unavailable(errors.New("dial tcp"), "query failed"), http.StatusServiceUnavailable},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/wards", nil)

			respondError(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wards", nil)

	respondError(rec, req, errors.New("pq: column does not exist"))

	assert.NotContains(t, rec.Body.String(), "column")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestDecodeBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wards", strings.NewReader(`{"name":"ICU"}`))

	var body struct {
		Name string `json:"name"`
	}
	require.True(t, decodeBody(rec, req, &body))
	assert.Equal(t, "ICU", body.Name)
}

func TestDecodeBodyMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wards", strings.NewReader(`{"name":`))

	var body map[string]any
	assert.False(t, decodeBody(rec, req, &body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
