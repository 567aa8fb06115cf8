package handlers

import (
	"net/http"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/services"
)

// AdmissionHandler exposes the patient-ward workflows and the occupancy
// reads.
type AdmissionHandler struct {
	admissionService *services.AdmissionService
}

func NewAdmissionHandler(admissionService *services.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionService}
}

func (h *AdmissionHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignWardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.admissionService.Assign(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdmissionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferWardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.admissionService.Transfer(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdmissionHandler) Discharge(w http.ResponseWriter, r *http.Request) {
	var req models.DischargeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.admissionService.Discharge(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AdmissionHandler) WardPatients(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "wardID")
	if !ok {
		return
	}
	roster, err := h.admissionService.WardRoster(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, roster)
}

func (h *AdmissionHandler) WardOccupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "wardID")
	if !ok {
		return
	}
	occupancy, err := h.admissionService.Occupancy(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, occupancy)
}

func (h *AdmissionHandler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "patientID")
	if !ok {
		return
	}
	history, err := h.admissionService.History(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
