package handlers

import (
	"net/http"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/services"
)

type DoctorHandler struct {
	doctorService *services.DoctorService
}

func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorService.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"doctors": doctors})
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "doctorID")
	if !ok {
		return
	}
	doctor, err := h.doctorService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"doctor": doctor})
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DoctorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	doctor, err := h.doctorService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"doctor": doctor})
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "doctorID")
	if !ok {
		return
	}
	var req models.DoctorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	doctor, err := h.doctorService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"doctor": doctor})
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "doctorID")
	if !ok {
		return
	}
	if err := h.doctorService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Doctor deleted successfully."})
}
