package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// PatientView is a patient response with its related entities expanded and
// the derived stay duration attached.
type PatientView struct {
	models.Patient
	CurrentWard        *models.WardHistoryEntry `json:"currentWard,omitempty"`
	AssignedWard       *models.WardSummary      `json:"assignedWard,omitempty"`
	AssignedTeam       *models.TeamSummary      `json:"assignedTeam,omitempty"`
	WardAssignmentDays int                      `json:"wardAssignmentDays"`
}

// TeamView is a doctor-team response with derived counts and member profiles.
type TeamView struct {
	models.DoctorTeam
	TeamSize       int                     `json:"teamSize"`
	PatientCount   int                     `json:"patientCount"`
	TeamLead       *models.DoctorSummary   `json:"teamLead,omitempty"`
	DoctorMembers  []models.DoctorSummary  `json:"doctorMembers"`
	PatientMembers []models.PatientSummary `json:"patientMembers"`
}

// viewBuilder resolves the entities a patient response expands.
type viewBuilder struct {
	wards repository.WardStore
	teams repository.TeamStore
}

func (b viewBuilder) patientView(ctx context.Context, patient *models.Patient) (*PatientView, error) {
	views, err := b.patientViews(ctx, []models.Patient{*patient})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (b viewBuilder) patientViews(ctx context.Context, patients []models.Patient) ([]PatientView, error) {
	wardIDs := make([]uuid.UUID, 0, len(patients))
	teamIDs := make([]uuid.UUID, 0, len(patients))
	seenWard := make(map[uuid.UUID]bool)
	seenTeam := make(map[uuid.UUID]bool)
	for i := range patients {
		if id := patients[i].AssignedWardID; id != nil && !seenWard[*id] {
			seenWard[*id] = true
			wardIDs = append(wardIDs, *id)
		}
		if id := patients[i].AssignedTeamID; id != nil && !seenTeam[*id] {
			seenTeam[*id] = true
			teamIDs = append(teamIDs, *id)
		}
	}

	wards, err := b.wards.GetByIDs(ctx, wardIDs)
	if err != nil {
		return nil, err
	}
	teams, err := b.teams.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	wardByID := make(map[uuid.UUID]models.WardSummary, len(wards))
	for i := range wards {
		wardByID[wards[i].ID] = wards[i].Summary()
	}
	teamByID := make(map[uuid.UUID]models.TeamSummary, len(teams))
	for i := range teams {
		teamByID[teams[i].ID] = teams[i].Summary()
	}

	now := time.Now().UTC()
	views := make([]PatientView, len(patients))
	for i := range patients {
		view := PatientView{Patient: patients[i]}
		view.CurrentWard = patients[i].CurrentStay()
		view.WardAssignmentDays = patients[i].WardAssignmentDays(now)
		if id := patients[i].AssignedWardID; id != nil {
			if summary, ok := wardByID[*id]; ok {
				view.AssignedWard = &summary
			}
		}
		if id := patients[i].AssignedTeamID; id != nil {
			if summary, ok := teamByID[*id]; ok {
				view.AssignedTeam = &summary
			}
		}
		views[i] = view
	}
	return views, nil
}

// dedupe removes repeated ids while keeping order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
