package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/cache"
	"github.com/careaxis/hospital-admin-api/internal/metrics"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// PatientService handles patient CRUD. Ward linkage is owned by the
// admission workflows; the only path that touches it here is the optional
// initial assignment on create, which runs the same booking logic inside the
// create transaction.
type PatientService struct {
	viewBuilder
	db       Transactor
	patients repository.PatientStore
	wards    repository.WardStore
	teams    repository.TeamStore
	cache    cache.Cache
}

func NewPatientService(db Transactor, patients repository.PatientStore, wards repository.WardStore, teams repository.TeamStore, c cache.Cache) *PatientService {
	return &PatientService{
		viewBuilder: viewBuilder{wards: wards, teams: teams},
		db:          db,
		patients:    patients,
		wards:       wards,
		teams:       teams,
		cache:       c,
	}
}

func (s *PatientService) List(ctx context.Context) ([]PatientView, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.patientViews(ctx, patients)
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*PatientView, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.patientView(ctx, patient)
}

func (s *PatientService) Create(ctx context.Context, req *models.PatientRequest) (*PatientView, error) {
	required := map[string]*string{
		"name":        req.Name,
		"dateOfBirth": req.DateOfBirth,
		"gender":      req.Gender,
		"contact":     req.Contact,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperr.Invalid("%s is required", field)
		}
	}
	if req.AssignedWardID != nil && *req.AssignedWardID != uuid.Nil {
		if req.BedNumber == nil || *req.BedNumber < 1 {
			return nil, apperr.Invalid("bedNumber is required when assignedWardId is set")
		}
	}

	patient := &models.Patient{
		Name:        *req.Name,
		DateOfBirth: *req.DateOfBirth,
		Gender:      *req.Gender,
		Contact:     *req.Contact,
		IsActive:    true,
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.History != nil {
		patient.History = *req.History
	}
	if req.IsActive != nil {
		patient.IsActive = *req.IsActive
	}

	if req.AssignedTeamID != nil && *req.AssignedTeamID != uuid.Nil {
		team, err := s.lookupTeam(ctx, *req.AssignedTeamID)
		if err != nil {
			return nil, err
		}
		patient.AssignedTeamID = &team.ID
		patient.AssignedTeamName = &team.TeamName
	}

	var ward *models.Ward
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.patients.WithTx(tx).Create(ctx, patient); err != nil {
			return err
		}
		if req.AssignedWardID == nil || *req.AssignedWardID == uuid.Nil {
			return nil
		}

		now := time.Now().UTC()
		w, err := applyAssignment(ctx, tx, s.wards, patient, *req.AssignedWardID, *req.BedNumber,
			"Initial admission", now)
		if err != nil {
			return err
		}
		patient.AdmissionDate = &now
		if err := s.patients.WithTx(tx).Save(ctx, patient); err != nil {
			return err
		}
		ward = w
		return nil
	})
	if req.AssignedWardID != nil && *req.AssignedWardID != uuid.Nil {
		metrics.ObserveWardOperation("assign", err)
	}
	if err != nil {
		return nil, err
	}
	if ward != nil {
		_ = s.cache.Delete(ctx, cache.OccupancyKey(ward.ID))
		metrics.OccupiedBeds.WithLabelValues(ward.Name).Set(float64(ward.TotalOccupiedBeds))
	}

	return s.patientView(ctx, patient)
}

func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req *models.PatientRequest) (*PatientView, error) {
	if req.AssignedWardID != nil || req.BedNumber != nil {
		return nil, apperr.Invalid("ward assignment cannot be changed here; use the patient-ward endpoints")
	}

	var patient *models.Patient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.patients.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.DateOfBirth != nil {
			p.DateOfBirth = *req.DateOfBirth
		}
		if req.Gender != nil {
			p.Gender = *req.Gender
		}
		if req.Contact != nil {
			p.Contact = *req.Contact
		}
		if req.EmergencyContact != nil {
			p.EmergencyContact = *req.EmergencyContact
		}
		if req.History != nil {
			p.History = *req.History
		}
		if req.AssignedTeamID != nil {
			if *req.AssignedTeamID == uuid.Nil {
				p.AssignedTeamID = nil
				p.AssignedTeamName = nil
			} else {
				team, err := s.lookupTeam(ctx, *req.AssignedTeamID)
				if err != nil {
					return err
				}
				p.AssignedTeamID = &team.ID
				p.AssignedTeamName = &team.TeamName
			}
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}

		if err := s.patients.WithTx(tx).Save(ctx, p); err != nil {
			return err
		}
		patient = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.patientView(ctx, patient)
}

// Delete soft deletes the patient. An admitted patient must be discharged
// first so the bed is released; the row lock keeps a concurrent assignment
// from slipping in between the check and the delete.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		patient, err := s.patients.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if patient.AssignedWardID != nil {
			return apperr.Conflict("patient is still assigned to a ward; discharge them first")
		}
		return s.patients.WithTx(tx).Delete(ctx, id)
	})
}

func (s *PatientService) lookupTeam(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Invalid("assigned team not found")
		}
		return nil, err
	}
	if !team.IsActive {
		return nil, apperr.Invalid("assigned team is not active")
	}
	return team, nil
}
