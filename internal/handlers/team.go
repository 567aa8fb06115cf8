package handlers

import (
	"net/http"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	team, err := h.teamService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"team": team})
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	team, err := h.teamService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"team": team})
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	var req models.TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	team, err := h.teamService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"team": team})
}

func (h *TeamHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	var req models.TeamMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	team, err := h.teamService.AddDoctor(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Doctor added to team successfully.", "team": team})
}

func (h *TeamHandler) RemoveDoctor(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	doctorID, ok := urlID(w, r, "doctorID")
	if !ok {
		return
	}
	team, err := h.teamService.RemoveDoctor(r.Context(), teamID, doctorID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Doctor removed from team successfully.", "team": team})
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "teamID")
	if !ok {
		return
	}
	if err := h.teamService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Doctor team deleted successfully."})
}
