package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/models"
)

// Store interfaces consumed by the service layer. The gorm repositories in
// this package are the production implementations; WithTx rebinds a store to
// a transaction so a workflow's reads and writes share one connection.

type WardStore interface {
	WithTx(tx *gorm.DB) WardStore
	List(ctx context.Context) ([]models.Ward, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ward, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Ward, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ward, error)
	Create(ctx context.Context, ward *models.Ward) error
	Save(ctx context.Context, ward *models.Ward) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DoctorStore interface {
	WithTx(tx *gorm.DB) DoctorStore
	List(ctx context.Context) ([]models.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Doctor, error)
	Create(ctx context.Context, doctor *models.Doctor) error
	Save(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PatientStore interface {
	WithTx(tx *gorm.DB) PatientStore
	List(ctx context.Context) ([]models.Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Save(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	RefreshWardName(ctx context.Context, wardID uuid.UUID, name string) error
	RefreshTeamName(ctx context.Context, teamID uuid.UUID, name string) error
}

type TeamStore interface {
	WithTx(tx *gorm.DB) TeamStore
	List(ctx context.Context) ([]models.DoctorTeam, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.DoctorTeam, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, team *models.DoctorTeam) error
	Save(ctx context.Context, team *models.DoctorTeam) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	_ WardStore    = (*WardRepository)(nil)
	_ DoctorStore  = (*DoctorRepository)(nil)
	_ PatientStore = (*PatientRepository)(nil)
	_ TeamStore    = (*TeamRepository)(nil)
)
