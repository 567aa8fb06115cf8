package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/cache"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// WardService handles ward CRUD. The occupied-bed count is owned by the
// occupancy engine and is not writable through this service.
type WardService struct {
	db       Transactor
	wards    repository.WardStore
	patients repository.PatientStore
	cache    cache.Cache
}

func NewWardService(db Transactor, wards repository.WardStore, patients repository.PatientStore, c cache.Cache) *WardService {
	return &WardService{db: db, wards: wards, patients: patients, cache: c}
}

func (s *WardService) List(ctx context.Context) ([]models.Ward, error) {
	return s.wards.List(ctx)
}

func (s *WardService) Get(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	return s.wards.GetByID(ctx, id)
}

func validWardGender(g models.WardGender) bool {
	switch g {
	case models.WardGenderMale, models.WardGenderFemale, models.WardGenderMixed:
		return true
	}
	return false
}

func (s *WardService) Create(ctx context.Context, req *models.WardRequest) (*models.Ward, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if req.Type == nil || *req.Type == "" {
		return nil, apperr.Invalid("type is required")
	}
	if req.TotalBeds == nil || *req.TotalBeds < 0 {
		return nil, apperr.Invalid("totalBeds is required and must not be negative")
	}
	if req.WardGender == nil || !validWardGender(*req.WardGender) {
		return nil, apperr.Invalid("wardGender must be Male, Female or Mixed")
	}

	ward := &models.Ward{
		Name:       *req.Name,
		Type:       *req.Type,
		TotalBeds:  *req.TotalBeds,
		WardGender: *req.WardGender,
		IsActive:   true,
	}
	if req.Description != nil {
		ward.Description = *req.Description
	}
	if req.IsActive != nil {
		ward.IsActive = *req.IsActive
	}

	if err := s.wards.Create(ctx, ward); err != nil {
		return nil, err
	}
	return ward, nil
}

func (s *WardService) Update(ctx context.Context, id uuid.UUID, req *models.WardRequest) (*models.Ward, error) {
	if req.WardGender != nil && !validWardGender(*req.WardGender) {
		return nil, apperr.Invalid("wardGender must be Male, Female or Mixed")
	}

	var updated *models.Ward
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ward, err := s.wards.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		renamed := false
		if req.Name != nil && *req.Name != ward.Name {
			ward.Name = *req.Name
			renamed = true
		}
		if req.Type != nil {
			ward.Type = *req.Type
		}
		if req.TotalBeds != nil {
			if *req.TotalBeds < ward.Occupancy().OccupiedBeds {
				return apperr.Conflict("cannot reduce total beds below current occupancy")
			}
			ward.TotalBeds = *req.TotalBeds
		}
		if req.WardGender != nil {
			ward.WardGender = *req.WardGender
		}
		if req.Description != nil {
			ward.Description = *req.Description
		}
		if req.IsActive != nil {
			ward.IsActive = *req.IsActive
		}

		if err := s.wards.WithTx(tx).Save(ctx, ward); err != nil {
			return err
		}
		if renamed {
			if err := s.patients.WithTx(tx).RefreshWardName(ctx, ward.ID, ward.Name); err != nil {
				return err
			}
		}
		updated = ward
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.OccupancyKey(id))
	return updated, nil
}

// Delete refuses to remove a ward that still has active occupants.
func (s *WardService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ward, err := s.wards.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if ward.Occupancy().OccupiedBeds > 0 {
			return apperr.Conflict("ward still has admitted patients; discharge or transfer them first")
		}
		return s.wards.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.OccupancyKey(id))
	return nil
}
