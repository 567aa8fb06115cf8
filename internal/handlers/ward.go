package handlers

import (
	"net/http"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/services"
)

type WardHandler struct {
	wardService *services.WardService
}

func NewWardHandler(wardService *services.WardService) *WardHandler {
	return &WardHandler{wardService: wardService}
}

func (h *WardHandler) List(w http.ResponseWriter, r *http.Request) {
	wards, err := h.wardService.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"wards": wards})
}

func (h *WardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "wardID")
	if !ok {
		return
	}
	ward, err := h.wardService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ward": ward})
}

func (h *WardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.WardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ward, err := h.wardService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ward": ward})
}

func (h *WardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "wardID")
	if !ok {
		return
	}
	var req models.WardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ward, err := h.wardService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ward": ward})
}

func (h *WardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "wardID")
	if !ok {
		return
	}
	if err := h.wardService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Ward deleted successfully."})
}
