package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careaxis/hospital-admin-api/internal/models"
)

// TeamRepository handles doctor-team persistence. Team codes carry a unique
// index; duplicates surface as Conflict through the gorm error translator.
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *TeamRepository) WithTx(tx *gorm.DB) TeamStore {
	return &TeamRepository{db: tx}
}

func (r *TeamRepository) List(ctx context.Context) ([]models.DoctorTeam, error) {
	var teams []models.DoctorTeam
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&teams).Error
	if err != nil {
		return nil, translate(err, "doctor teams")
	}
	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error) {
	var team models.DoctorTeam
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "doctor team")
	}
	return &team, nil
}

// GetByIDForUpdate locks the team row for the surrounding transaction.
func (r *TeamRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error) {
	var team models.DoctorTeam
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "doctor team")
	}
	return &team, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.DoctorTeam, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teams []models.DoctorTeam
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error
	if err != nil {
		return nil, translate(err, "doctor teams")
	}
	return teams, nil
}

// CodeExists reports whether a team already uses the code. The caller must
// pass the normalized form.
func (r *TeamRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DoctorTeam{}).
		Where("team_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "doctor team")
	}
	return count > 0, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *models.DoctorTeam) error {
	return translate(r.db.WithContext(ctx).Create(team).Error, "doctor team")
}

func (r *TeamRepository) Save(ctx context.Context, team *models.DoctorTeam) error {
	return translate(r.db.WithContext(ctx).Save(team).Error, "doctor team")
}

// Delete soft deletes the team without cascading to patients or doctors.
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.DoctorTeam{}, "id = ?", id).Error, "doctor team")
}
