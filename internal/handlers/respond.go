package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError maps the error's kind to a status code. Unclassified errors
// are logged and hidden behind a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalid:
		status = http.StatusUnprocessableEntity
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled error")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	if status == http.StatusServiceUnavailable {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Store unavailable")
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// urlID parses the named uuid path parameter, writing a 422 when it does not
// parse.
func urlID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
