package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careaxis/hospital-admin-api/internal/models"
)

// WardRepository handles ward persistence. Wards are always loaded with
// their occupancy entries: the save hook recomputes the occupied-bed count
// from them.
type WardRepository struct {
	db *gorm.DB
}

func NewWardRepository(db *gorm.DB) *WardRepository {
	return &WardRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *WardRepository) WithTx(tx *gorm.DB) WardStore {
	return &WardRepository{db: tx}
}

func (r *WardRepository) List(ctx context.Context) ([]models.Ward, error) {
	var wards []models.Ward
	err := r.db.WithContext(ctx).
		Preload("Patients").
		Order("created_at ASC").
		Find(&wards).Error
	if err != nil {
		return nil, translate(err, "wards")
	}
	return wards, nil
}

func (r *WardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	var ward models.Ward
	err := r.db.WithContext(ctx).
		Preload("Patients").
		First(&ward, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "ward")
	}
	return &ward, nil
}

// GetByIDForUpdate locks the ward row for the duration of the surrounding
// transaction, serializing read-modify-write sequences on the same ward.
func (r *WardRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	var ward models.Ward
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Patients").
		First(&ward, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "ward")
	}
	return &ward, nil
}

func (r *WardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ward, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var wards []models.Ward
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&wards).Error
	if err != nil {
		return nil, translate(err, "wards")
	}
	return wards, nil
}

func (r *WardRepository) Create(ctx context.Context, ward *models.Ward) error {
	return translate(r.db.WithContext(ctx).Create(ward).Error, "ward")
}

// Save persists the ward together with its occupancy entries.
func (r *WardRepository) Save(ctx context.Context, ward *models.Ward) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ward).Error
	return translate(err, "ward")
}

// Delete soft deletes the ward. Occupancy entries are kept for audit.
func (r *WardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Ward{}, "id = ?", id).Error, "ward")
}
