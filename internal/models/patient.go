package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is a hospital patient. AssignedWardID is non-nil exactly when the
// patient has an open ward-history entry, and both name the same ward; the
// admission workflows keep the two sides consistent inside one transaction.
// AssignedWardName and AssignedTeamName are denormalized copies refreshed on
// every write that changes the referenced entity's name.
type Patient struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string            `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth      string            `gorm:"type:varchar(50);not null" json:"dateOfBirth"`
	Gender           string            `gorm:"type:varchar(20);not null" json:"gender"`
	Contact          string            `gorm:"type:varchar(50);not null" json:"contact"`
	EmergencyContact string            `gorm:"type:varchar(50)" json:"emergencyContact,omitempty"`
	History          string            `gorm:"type:text" json:"history,omitempty"`
	AssignedWardID   *uuid.UUID        `gorm:"type:uuid;index" json:"assignedWardId,omitempty"`
	AssignedWardName *string           `gorm:"type:varchar(255)" json:"assignedWardName,omitempty"`
	BedNumber        *int              `json:"bedNumber,omitempty"`
	AssignedTeamID   *uuid.UUID        `gorm:"type:uuid;index" json:"assignedTeamId,omitempty"`
	AssignedTeamName *string           `gorm:"type:varchar(255)" json:"assignedTeamName,omitempty"`
	AdmissionDate    *time.Time        `json:"admissionDate,omitempty"`
	DischargeDate    *time.Time        `json:"dischargeDate,omitempty"`
	IsActive         bool              `gorm:"default:true" json:"isActive"`
	WardHistory      []WardHistoryEntry `gorm:"foreignKey:PatientID" json:"wardHistory"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WardHistoryEntry is the audit record of one stay in one ward. It stays
// open (no DischargedDate) while the stay is current; at most one entry per
// patient is open at a time.
type WardHistoryEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patientId"`
	WardID         uuid.UUID  `gorm:"type:uuid;not null" json:"wardId"`
	WardName       string     `gorm:"type:varchar(255)" json:"wardName"`
	BedNumber      int        `json:"bedNumber"`
	AssignedDate   time.Time  `json:"assignedDate"`
	DischargedDate *time.Time `json:"dischargedDate,omitempty"`
	Reason         string     `gorm:"type:varchar(255)" json:"reason,omitempty"`
}

func (WardHistoryEntry) TableName() string {
	return "patient_ward_history"
}

func (e *WardHistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CurrentStay returns the open ward-history entry, or nil when the last
// entry is closed. WardHistory must be ordered by assigned date ascending.
func (p *Patient) CurrentStay() *WardHistoryEntry {
	if len(p.WardHistory) == 0 {
		return nil
	}
	last := &p.WardHistory[len(p.WardHistory)-1]
	if last.DischargedDate == nil {
		return last
	}
	return nil
}

// OpenStay appends a new open history entry for a stay starting now.
func (p *Patient) OpenStay(wardID uuid.UUID, wardName string, bedNumber int, reason string, now time.Time) {
	p.WardHistory = append(p.WardHistory, WardHistoryEntry{
		PatientID:    p.ID,
		WardID:       wardID,
		WardName:     wardName,
		BedNumber:    bedNumber,
		AssignedDate: now,
		Reason:       reason,
	})
}

// CloseStay stamps the discharge date onto the open entry, if there is one.
func (p *Patient) CloseStay(now time.Time) {
	if stay := p.CurrentStay(); stay != nil {
		stay.DischargedDate = &now
	}
}

// WardAssignmentDays is the number of days since admission, rounded up.
// Zero for a patient that was never admitted.
func (p *Patient) WardAssignmentDays(now time.Time) int {
	if p.AdmissionDate == nil {
		return 0
	}
	elapsed := now.Sub(*p.AdmissionDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

// ClearWardAssignment removes the patient's side of the ward linkage.
func (p *Patient) ClearWardAssignment() {
	p.AssignedWardID = nil
	p.AssignedWardName = nil
	p.BedNumber = nil
}

// PatientSummary is the slice of a patient embedded in team responses.
type PatientSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Gender  string    `json:"gender"`
	Contact string    `json:"contact"`
}

func (p *Patient) Summary() PatientSummary {
	return PatientSummary{ID: p.ID, Name: p.Name, Gender: p.Gender, Contact: p.Contact}
}
