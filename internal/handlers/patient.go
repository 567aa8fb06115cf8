package handlers

import (
	"net/http"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/services"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientService.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"patients": patients})
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "patientID")
	if !ok {
		return
	}
	patient, err := h.patientService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"patient": patient})
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PatientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patient, err := h.patientService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"patient": patient})
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "patientID")
	if !ok {
		return
	}
	var req models.PatientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patient, err := h.patientService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"patient": patient})
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "patientID")
	if !ok {
		return
	}
	if err := h.patientService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Patient deleted successfully."})
}
