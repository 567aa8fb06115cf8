package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careaxis/hospital-admin-api/internal/models"
)

// PatientRepository handles patient persistence. Patients are loaded with
// their ward history ordered by assignment date, so the last entry is the
// current stay when it is open.
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *PatientRepository) WithTx(tx *gorm.DB) PatientStore {
	return &PatientRepository{db: tx}
}

func withHistory(db *gorm.DB) *gorm.DB {
	return db.Preload("WardHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("assigned_date ASC")
	})
}

func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := withHistory(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Find(&patients).Error
	if err != nil {
		return nil, translate(err, "patients")
	}
	return patients, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	err := withHistory(r.db.WithContext(ctx)).
		First(&patient, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "patient")
	}
	return &patient, nil
}

// GetByIDForUpdate locks the patient row for the surrounding transaction.
func (r *PatientRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	err := withHistory(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"})).
		First(&patient, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "patient")
	}
	return &patient, nil
}

func (r *PatientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Patient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&patients).Error
	if err != nil {
		return nil, translate(err, "patients")
	}
	return patients, nil
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Create(patient).Error, "patient")
}

// Save persists the patient together with its ward-history entries.
func (r *PatientRepository) Save(ctx context.Context, patient *models.Patient) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(patient).Error
	return translate(err, "patient")
}

// Delete soft deletes the patient. History entries are kept for audit.
func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id).Error, "patient")
}

// RefreshWardName rewrites the denormalized ward name on every patient
// currently assigned to the ward.
func (r *PatientRepository) RefreshWardName(ctx context.Context, wardID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("assigned_ward_id = ?", wardID).
		Update("assigned_ward_name", name).Error
	return translate(err, "patients")
}

// RefreshTeamName rewrites the denormalized team name on every patient
// assigned to the team.
func (r *PatientRepository) RefreshTeamName(ctx context.Context, teamID uuid.UUID, name string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("assigned_team_id = ?", teamID).
		Update("assigned_team_name", name).Error
	return translate(err, "patients")
}
