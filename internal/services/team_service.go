package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// TeamService manages doctor teams and their rosters. Every referenced
// doctor and patient is checked to exist and be active before it lands on a
// roster.
type TeamService struct {
	db       Transactor
	teams    repository.TeamStore
	doctors  repository.DoctorStore
	patients repository.PatientStore
}

func NewTeamService(db Transactor, teams repository.TeamStore, doctors repository.DoctorStore, patients repository.PatientStore) *TeamService {
	return &TeamService{db: db, teams: teams, doctors: doctors, patients: patients}
}

func (s *TeamService) List(ctx context.Context) ([]TeamView, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]TeamView, len(teams))
	for i := range teams {
		view, err := s.teamView(ctx, &teams[i])
		if err != nil {
			return nil, err
		}
		views[i] = *view
	}
	return views, nil
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID) (*TeamView, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.teamView(ctx, team)
}

func (s *TeamService) Create(ctx context.Context, req *models.TeamRequest) (*TeamView, error) {
	if req.TeamName == nil || *req.TeamName == "" {
		return nil, apperr.Invalid("teamName is required")
	}
	if req.TeamCode == nil || models.NormalizeTeamCode(*req.TeamCode) == "" {
		return nil, apperr.Invalid("teamCode is required")
	}
	if req.Department == nil || *req.Department == "" {
		return nil, apperr.Invalid("department is required")
	}
	if req.TeamLeadID == nil || *req.TeamLeadID == uuid.Nil {
		return nil, apperr.Invalid("teamLead is required")
	}

	if err := s.checkLead(ctx, *req.TeamLeadID); err != nil {
		return nil, err
	}
	doctorIDs := []uuid.UUID{}
	if req.Doctors != nil {
		doctorIDs = dedupe(*req.Doctors)
		if err := s.checkDoctors(ctx, doctorIDs); err != nil {
			return nil, err
		}
	}
	patientIDs := []uuid.UUID{}
	if req.Patients != nil {
		patientIDs = dedupe(*req.Patients)
		if err := s.checkPatients(ctx, patientIDs); err != nil {
			return nil, err
		}
	}

	code := models.NormalizeTeamCode(*req.TeamCode)
	exists, err := s.teams.CodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("team code already exists")
	}

	team := &models.DoctorTeam{
		TeamName:   *req.TeamName,
		TeamCode:   code,
		Department: *req.Department,
		TeamLeadID: *req.TeamLeadID,
		Doctors:    doctorIDs,
		Patients:   patientIDs,
		IsActive:   true,
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}

	if err := s.teams.Create(ctx, team); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			// Unique-index race with the pre-check above.
			return nil, apperr.Conflict("team code already exists")
		}
		return nil, err
	}
	return s.teamView(ctx, team)
}

func (s *TeamService) Update(ctx context.Context, id uuid.UUID, req *models.TeamRequest) (*TeamView, error) {
	var updated *models.DoctorTeam
	err := s.db.Transaction(func(tx *gorm.DB) error {
		team, err := s.teams.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		renamed := false
		if req.TeamName != nil && *req.TeamName != "" && *req.TeamName != team.TeamName {
			team.TeamName = *req.TeamName
			renamed = true
		}
		if req.TeamCode != nil {
			code := models.NormalizeTeamCode(*req.TeamCode)
			if code == "" {
				return apperr.Invalid("teamCode must not be empty")
			}
			if code != team.TeamCode {
				exists, err := s.teams.WithTx(tx).CodeExists(ctx, code)
				if err != nil {
					return err
				}
				if exists {
					return apperr.Conflict("team code already exists")
				}
				team.TeamCode = code
			}
		}
		if req.Department != nil {
			team.Department = *req.Department
		}
		if req.TeamLeadID != nil && *req.TeamLeadID != team.TeamLeadID {
			if err := s.checkLead(ctx, *req.TeamLeadID); err != nil {
				return err
			}
			team.TeamLeadID = *req.TeamLeadID
		}
		if req.Doctors != nil {
			ids := dedupe(*req.Doctors)
			if err := s.checkDoctors(ctx, ids); err != nil {
				return err
			}
			team.Doctors = ids
		}
		if req.Patients != nil {
			ids := dedupe(*req.Patients)
			if err := s.checkPatients(ctx, ids); err != nil {
				return err
			}
			team.Patients = ids
		}
		if req.Description != nil {
			team.Description = *req.Description
		}
		if req.IsActive != nil {
			team.IsActive = *req.IsActive
		}

		if err := s.teams.WithTx(tx).Save(ctx, team); err != nil {
			return err
		}
		if renamed {
			if err := s.patients.WithTx(tx).RefreshTeamName(ctx, team.ID, team.TeamName); err != nil {
				return err
			}
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.teamView(ctx, updated)
}

// AddDoctor puts a doctor on the team roster.
func (s *TeamService) AddDoctor(ctx context.Context, teamID uuid.UUID, req *models.TeamMemberRequest) (*TeamView, error) {
	if req.DoctorID == uuid.Nil {
		return nil, apperr.Invalid("doctorId is required")
	}
	if err := s.checkDoctors(ctx, []uuid.UUID{req.DoctorID}); err != nil {
		return nil, err
	}

	var updated *models.DoctorTeam
	err := s.db.Transaction(func(tx *gorm.DB) error {
		team, err := s.teams.WithTx(tx).GetByIDForUpdate(ctx, teamID)
		if err != nil {
			return err
		}
		if err := team.AddDoctor(req.DoctorID); err != nil {
			return err
		}
		if err := s.teams.WithTx(tx).Save(ctx, team); err != nil {
			return err
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.teamView(ctx, updated)
}

// RemoveDoctor takes a doctor off the team roster. The lead stays until it
// is reassigned.
func (s *TeamService) RemoveDoctor(ctx context.Context, teamID, doctorID uuid.UUID) (*TeamView, error) {
	var updated *models.DoctorTeam
	err := s.db.Transaction(func(tx *gorm.DB) error {
		team, err := s.teams.WithTx(tx).GetByIDForUpdate(ctx, teamID)
		if err != nil {
			return err
		}
		if err := team.RemoveDoctor(doctorID); err != nil {
			return err
		}
		if err := s.teams.WithTx(tx).Save(ctx, team); err != nil {
			return err
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.teamView(ctx, updated)
}

// Delete soft deletes the team. Patients keep their assignedTeamId; a stale
// reference resolves to not-found on the next expansion.
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.teams.GetByID(ctx, id); err != nil {
		return err
	}
	return s.teams.Delete(ctx, id)
}

func (s *TeamService) checkLead(ctx context.Context, id uuid.UUID) error {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Invalid("team lead doctor not found")
		}
		return err
	}
	if !doctor.IsActive {
		return apperr.Invalid("team lead doctor is not active")
	}
	return nil
}

// checkDoctors requires every id to resolve to a doctor, and every resolved
// doctor to be active. The two failures carry different kinds: an unknown id
// is NotFound, an inactive doctor is Invalid.
func (s *TeamService) checkDoctors(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	doctors, err := s.doctors.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(doctors) != len(ids) {
		return apperr.NotFound("one or more doctors not found")
	}
	for i := range doctors {
		if !doctors[i].IsActive {
			return apperr.Invalid("doctor %s is not active", doctors[i].ID)
		}
	}
	return nil
}

func (s *TeamService) checkPatients(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	patients, err := s.patients.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(patients) != len(ids) {
		return apperr.NotFound("one or more patients not found")
	}
	for i := range patients {
		if !patients[i].IsActive {
			return apperr.Invalid("patient %s is not active", patients[i].ID)
		}
	}
	return nil
}

// teamView expands roster ids into member profiles.
func (s *TeamService) teamView(ctx context.Context, team *models.DoctorTeam) (*TeamView, error) {
	doctors, err := s.doctors.GetByIDs(ctx, team.Doctors)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.GetByIDs(ctx, team.Patients)
	if err != nil {
		return nil, err
	}

	view := &TeamView{
		DoctorTeam:     *team,
		TeamSize:       team.TeamSize(),
		PatientCount:   team.PatientCount(),
		DoctorMembers:  make([]models.DoctorSummary, 0, len(doctors)),
		PatientMembers: make([]models.PatientSummary, 0, len(patients)),
	}
	for i := range doctors {
		summary := doctors[i].Summary()
		if doctors[i].ID == team.TeamLeadID {
			view.TeamLead = &summary
		}
		view.DoctorMembers = append(view.DoctorMembers, summary)
	}
	for i := range patients {
		view.PatientMembers = append(view.PatientMembers, patients[i].Summary())
	}
	return view, nil
}
