package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
)

// Roster failures.
var (
	ErrAlreadyInTeam = apperr.Conflict("doctor is already in this team")
	ErrNotInTeam     = apperr.Conflict("doctor is not in this team")
)

// DoctorTeam groups doctors under a lead and optionally carries the patients
// the team looks after. Member lists are stored as JSONB id arrays. The team
// lead is always present in the doctor list; the code is unique, upper-cased
// and trimmed.
type DoctorTeam struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	TeamName    string                        `gorm:"type:varchar(255);not null" json:"teamName"`
	TeamCode    string                        `gorm:"type:varchar(50);not null;uniqueIndex" json:"teamCode"`
	Department  string                        `gorm:"type:varchar(100);not null" json:"department"`
	TeamLeadID  uuid.UUID                     `gorm:"type:uuid;not null" json:"teamLeadId"`
	Doctors     datatypes.JSONSlice[uuid.UUID] `json:"doctors"`
	Patients    datatypes.JSONSlice[uuid.UUID] `json:"patients"`
	Description string                        `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool                          `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt                `gorm:"index" json:"-"`
}

func (DoctorTeam) TableName() string {
	return "doctor_teams"
}

func (t *DoctorTeam) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BeforeSave normalizes the code and enforces the lead-in-roster invariant.
func (t *DoctorTeam) BeforeSave(tx *gorm.DB) error {
	t.Normalize()
	return nil
}

// Normalize trims free-text fields, upper-cases the team code and makes sure
// the team lead appears in the doctor list.
func (t *DoctorTeam) Normalize() {
	t.TeamName = strings.TrimSpace(t.TeamName)
	t.TeamCode = NormalizeTeamCode(t.TeamCode)
	t.Department = strings.TrimSpace(t.Department)
	t.Description = strings.TrimSpace(t.Description)
	if t.TeamLeadID != uuid.Nil && !t.HasDoctor(t.TeamLeadID) {
		t.Doctors = append(t.Doctors, t.TeamLeadID)
	}
}

// NormalizeTeamCode is the canonical form a team code is stored and compared
// in.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// HasDoctor reports whether the doctor is on the roster.
func (t *DoctorTeam) HasDoctor(doctorID uuid.UUID) bool {
	for _, id := range t.Doctors {
		if id == doctorID {
			return true
		}
	}
	return false
}

// AddDoctor puts a doctor on the roster.
func (t *DoctorTeam) AddDoctor(doctorID uuid.UUID) error {
	if t.HasDoctor(doctorID) {
		return ErrAlreadyInTeam
	}
	t.Doctors = append(t.Doctors, doctorID)
	return nil
}

// RemoveDoctor takes a doctor off the roster. The team lead cannot be
// removed; reassign the lead first.
func (t *DoctorTeam) RemoveDoctor(doctorID uuid.UUID) error {
	if doctorID == t.TeamLeadID {
		return apperr.Invalid("cannot remove the team lead from the team")
	}
	if !t.HasDoctor(doctorID) {
		return ErrNotInTeam
	}
	kept := make(datatypes.JSONSlice[uuid.UUID], 0, len(t.Doctors)-1)
	for _, id := range t.Doctors {
		if id != doctorID {
			kept = append(kept, id)
		}
	}
	t.Doctors = kept
	return nil
}

// TeamSize is the number of doctors on the roster.
func (t *DoctorTeam) TeamSize() int {
	return len(t.Doctors)
}

// PatientCount is the number of patients assigned to the team.
func (t *DoctorTeam) PatientCount() int {
	return len(t.Patients)
}

// TeamSummary is the slice of a team embedded in patient responses.
type TeamSummary struct {
	ID         uuid.UUID `json:"id"`
	TeamName   string    `json:"teamName"`
	TeamCode   string    `json:"teamCode"`
	Department string    `json:"department"`
}

func (t *DoctorTeam) Summary() TeamSummary {
	return TeamSummary{ID: t.ID, TeamName: t.TeamName, TeamCode: t.TeamCode, Department: t.Department}
}
