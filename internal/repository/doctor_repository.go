package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careaxis/hospital-admin-api/internal/models"
)

// DoctorRepository handles doctor persistence.
type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *DoctorRepository) WithTx(tx *gorm.DB) DoctorStore {
	return &DoctorRepository{db: tx}
}

func (r *DoctorRepository) List(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&doctors).Error
	if err != nil {
		return nil, translate(err, "doctors")
	}
	return doctors, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "doctor")
	}
	return &doctor, nil
}

// GetByIDForUpdate locks the doctor row for the surrounding transaction.
func (r *DoctorRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doctor, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "doctor")
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Doctor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&doctors).Error
	if err != nil {
		return nil, translate(err, "doctors")
	}
	return doctors, nil
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Create(doctor).Error, "doctor")
}

func (r *DoctorRepository) Save(ctx context.Context, doctor *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Save(doctor).Error, "doctor")
}

// Delete soft deletes the doctor. Team rosters referencing the doctor are
// not cascaded.
func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id).Error, "doctor")
}
