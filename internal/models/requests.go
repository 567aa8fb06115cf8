package models

import "github.com/google/uuid"

// Request bodies for the management API. Pointer fields distinguish "not
// provided" from zero values so PATCH keeps partial-update semantics.

type WardRequest struct {
	Name        *string     `json:"name,omitempty"`
	Type        *string     `json:"type,omitempty"`
	TotalBeds   *int        `json:"totalBeds,omitempty"`
	WardGender  *WardGender `json:"wardGender,omitempty"`
	Description *string     `json:"description,omitempty"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

type DoctorRequest struct {
	Name        *string `json:"name,omitempty"`
	Licence     *string `json:"licence,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type PatientRequest struct {
	Name             *string    `json:"name,omitempty"`
	DateOfBirth      *string    `json:"dateOfBirth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Contact          *string    `json:"contact,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	History          *string    `json:"history,omitempty"`
	AssignedWardID   *uuid.UUID `json:"assignedWardId,omitempty"`
	BedNumber        *int       `json:"bedNumber,omitempty"`
	AssignedTeamID   *uuid.UUID `json:"assignedTeamId,omitempty"`
	IsActive         *bool      `json:"isActive,omitempty"`
}

type TeamRequest struct {
	TeamName    *string      `json:"teamName,omitempty"`
	TeamCode    *string      `json:"teamCode,omitempty"`
	Department  *string      `json:"department,omitempty"`
	TeamLeadID  *uuid.UUID   `json:"teamLead,omitempty"`
	Doctors     *[]uuid.UUID `json:"doctors,omitempty"`
	Patients    *[]uuid.UUID `json:"patients,omitempty"`
	Description *string      `json:"description,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

type TeamMemberRequest struct {
	DoctorID uuid.UUID `json:"doctorId"`
}

type AssignWardRequest struct {
	PatientID uuid.UUID `json:"patientId"`
	WardID    uuid.UUID `json:"wardId"`
	BedNumber int       `json:"bedNumber"`
	Reason    string    `json:"reason,omitempty"`
}

type TransferWardRequest struct {
	PatientID uuid.UUID `json:"patientId"`
	NewWardID uuid.UUID `json:"newWardId"`
	BedNumber int       `json:"bedNumber"`
	Reason    string    `json:"reason,omitempty"`
}

type DischargeRequest struct {
	PatientID uuid.UUID `json:"patientId"`
	Reason    string    `json:"reason,omitempty"`
}
