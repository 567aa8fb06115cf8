package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor is a practising doctor. Teams reference doctors by id; deleting a
// doctor does not cascade into team rosters (stale references resolve to
// not-found on the next lookup).
type Doctor struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Licence     string         `gorm:"type:varchar(100);not null" json:"licence"`
	Designation string         `gorm:"type:varchar(100);not null" json:"designation"`
	Department  string         `gorm:"type:varchar(100);not null" json:"department"`
	Contact     string         `gorm:"type:varchar(50);not null" json:"contact"`
	Email       string         `gorm:"type:varchar(255);not null" json:"email"`
	Address     string         `gorm:"type:text;not null" json:"address"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DoctorSummary is the slice of a doctor embedded in team responses.
type DoctorSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Department  string    `json:"department"`
}

func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{ID: d.ID, Name: d.Name, Designation: d.Designation, Department: d.Department}
}
