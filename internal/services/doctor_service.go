package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// DoctorService handles doctor CRUD.
type DoctorService struct {
	db      Transactor
	doctors repository.DoctorStore
}

func NewDoctorService(db Transactor, doctors repository.DoctorStore) *DoctorService {
	return &DoctorService{db: db, doctors: doctors}
}

func (s *DoctorService) List(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *DoctorService) Get(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *DoctorService) Create(ctx context.Context, req *models.DoctorRequest) (*models.Doctor, error) {
	required := map[string]*string{
		"name":        req.Name,
		"licence":     req.Licence,
		"designation": req.Designation,
		"department":  req.Department,
		"contact":     req.Contact,
		"email":       req.Email,
		"address":     req.Address,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperr.Invalid("%s is required", field)
		}
	}

	doctor := &models.Doctor{
		Name:        *req.Name,
		Licence:     *req.Licence,
		Designation: *req.Designation,
		Department:  *req.Department,
		Contact:     *req.Contact,
		Email:       *req.Email,
		Address:     *req.Address,
		IsActive:    true,
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) Update(ctx context.Context, id uuid.UUID, req *models.DoctorRequest) (*models.Doctor, error) {
	var updated *models.Doctor
	err := s.db.Transaction(func(tx *gorm.DB) error {
		doctor, err := s.doctors.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			doctor.Name = *req.Name
		}
		if req.Licence != nil {
			doctor.Licence = *req.Licence
		}
		if req.Designation != nil {
			doctor.Designation = *req.Designation
		}
		if req.Department != nil {
			doctor.Department = *req.Department
		}
		if req.Contact != nil {
			doctor.Contact = *req.Contact
		}
		if req.Email != nil {
			doctor.Email = *req.Email
		}
		if req.Address != nil {
			doctor.Address = *req.Address
		}
		if req.IsActive != nil {
			doctor.IsActive = *req.IsActive
		}

		if err := s.doctors.WithTx(tx).Save(ctx, doctor); err != nil {
			return err
		}
		updated = doctor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft deletes the doctor. Team rosters are left untouched; a stale
// roster entry resolves to not-found on its next lookup.
func (s *DoctorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.doctors.WithTx(tx).GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		return s.doctors.WithTx(tx).Delete(ctx, id)
	})
}
