package models

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
)

// WardGender restricts which patients a ward admits.
type WardGender string

const (
	WardGenderMale   WardGender = "Male"
	WardGenderFemale WardGender = "Female"
	WardGenderMixed  WardGender = "Mixed"
)

// Bed-allocation failures. All are state-precondition violations.
var (
	ErrWardFull    = apperr.Conflict("ward is full")
	ErrBedOccupied = apperr.Conflict("bed is already occupied")
	ErrNotInWard   = apperr.Conflict("patient is not in this ward")
)

// Ward owns the bed-allocation invariants for one ward. TotalOccupiedBeds is
// never written by callers: it is recomputed from the active occupancy
// entries every time the ward is saved.
type Ward struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Type              string         `gorm:"type:varchar(100);not null" json:"type"`
	TotalBeds         int            `gorm:"not null" json:"totalBeds"`
	TotalOccupiedBeds int            `gorm:"not null;default:0" json:"totalOccupiedBeds"`
	WardGender        WardGender     `gorm:"type:varchar(10);not null" json:"wardGender"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	IsActive          bool           `gorm:"default:true" json:"isActive"`
	Patients          []BedOccupancy `gorm:"foreignKey:WardID" json:"patients"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ward) TableName() string {
	return "wards"
}

// BedOccupancy is one stay in one bed. Discharge flips IsActive to false;
// the row is retained for audit.
type BedOccupancy struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WardID        uuid.UUID `gorm:"type:uuid;not null;index" json:"wardId"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patientId"`
	BedNumber     int       `gorm:"not null" json:"bedNumber"`
	AdmissionDate time.Time `json:"admissionDate"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
}

func (BedOccupancy) TableName() string {
	return "ward_bed_occupancies"
}

func (b *BedOccupancy) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (w *Ward) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes the occupied-bed count from the active entries,
// overriding anything a caller may have set. Wards must therefore always be
// loaded with their occupancy entries before being saved.
func (w *Ward) BeforeSave(tx *gorm.DB) error {
	w.recountOccupied()
	return nil
}

func (w *Ward) recountOccupied() {
	n := 0
	for i := range w.Patients {
		if w.Patients[i].IsActive {
			n++
		}
	}
	w.TotalOccupiedBeds = n
}

func (w *Ward) bedOccupied(bedNumber int) bool {
	for i := range w.Patients {
		if w.Patients[i].IsActive && w.Patients[i].BedNumber == bedNumber {
			return true
		}
	}
	return false
}

func (w *Ward) activeEntry(patientID uuid.UUID) *BedOccupancy {
	for i := range w.Patients {
		if w.Patients[i].IsActive && w.Patients[i].PatientID == patientID {
			return &w.Patients[i]
		}
	}
	return nil
}

// AssignPatient books a bed for a patient. It fails when the ward is at
// capacity or the bed already has an active occupant.
func (w *Ward) AssignPatient(patientID uuid.UUID, bedNumber int, now time.Time) error {
	w.recountOccupied()
	if w.TotalOccupiedBeds >= w.TotalBeds {
		return ErrWardFull
	}
	if w.bedOccupied(bedNumber) {
		return ErrBedOccupied
	}
	w.Patients = append(w.Patients, BedOccupancy{
		WardID:        w.ID,
		PatientID:     patientID,
		BedNumber:     bedNumber,
		AdmissionDate: now,
		IsActive:      true,
	})
	w.recountOccupied()
	return nil
}

// DischargePatient marks the patient's active entry inactive. The entry is
// never removed.
func (w *Ward) DischargePatient(patientID uuid.UUID) error {
	entry := w.activeEntry(patientID)
	if entry == nil {
		return ErrNotInWard
	}
	entry.IsActive = false
	w.recountOccupied()
	return nil
}

// TransferPatient moves the patient's active entry to another bed in the
// same ward. The admission date is kept and no new entry is appended.
func (w *Ward) TransferPatient(patientID uuid.UUID, newBedNumber int) error {
	if w.bedOccupied(newBedNumber) {
		return ErrBedOccupied
	}
	entry := w.activeEntry(patientID)
	if entry == nil {
		return ErrNotInWard
	}
	entry.BedNumber = newBedNumber
	return nil
}

// OccupancySnapshot is the derived view of a ward's bed allocation.
type OccupancySnapshot struct {
	TotalBeds           int   `json:"totalBeds"`
	OccupiedBeds        int   `json:"occupiedBeds"`
	AvailableBeds       int   `json:"availableBeds"`
	OccupancyPercentage int   `json:"occupancyPercentage"`
	OccupiedBedNumbers  []int `json:"occupiedBedNumbers"`
	AvailableBedNumbers []int `json:"availableBedNumbers"`
}

// Occupancy derives all occupancy figures from the active entries. This is
// the only place these numbers are computed.
func (w *Ward) Occupancy() OccupancySnapshot {
	occupied := make([]int, 0, len(w.Patients))
	taken := make(map[int]bool, len(w.Patients))
	for i := range w.Patients {
		if w.Patients[i].IsActive {
			occupied = append(occupied, w.Patients[i].BedNumber)
			taken[w.Patients[i].BedNumber] = true
		}
	}
	sort.Ints(occupied)

	available := make([]int, 0, w.TotalBeds)
	for bed := 1; bed <= w.TotalBeds; bed++ {
		if !taken[bed] {
			available = append(available, bed)
		}
	}

	pct := 0
	if w.TotalBeds > 0 {
		pct = int(math.Round(float64(len(occupied)) / float64(w.TotalBeds) * 100))
	}

	return OccupancySnapshot{
		TotalBeds:           w.TotalBeds,
		OccupiedBeds:        len(occupied),
		AvailableBeds:       w.TotalBeds - len(occupied),
		OccupancyPercentage: pct,
		OccupiedBedNumbers:  occupied,
		AvailableBedNumbers: available,
	}
}

// MarshalJSON serializes the derived occupancy fields alongside the stored
// ones, the same figures for every reader.
func (w Ward) MarshalJSON() ([]byte, error) {
	type alias Ward
	occ := w.Occupancy()
	w.TotalOccupiedBeds = occ.OccupiedBeds
	return json.Marshal(struct {
		alias
		AvailableBeds       int   `json:"availableBeds"`
		OccupancyPercentage int   `json:"occupancyPercentage"`
		OccupiedBedNumbers  []int `json:"occupiedBedNumbers"`
		AvailableBedNumbers []int `json:"availableBedNumbers"`
	}{
		alias:               alias(w),
		AvailableBeds:       occ.AvailableBeds,
		OccupancyPercentage: occ.OccupancyPercentage,
		OccupiedBedNumbers:  occ.OccupiedBedNumbers,
		AvailableBedNumbers: occ.AvailableBedNumbers,
	})
}

// WardSummary is the slice of a ward embedded in patient responses.
type WardSummary struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	WardGender        WardGender `json:"wardGender"`
	TotalBeds         int        `json:"totalBeds"`
	TotalOccupiedBeds int        `json:"totalOccupiedBeds"`
}

// Summary projects the ward onto its embedded form.
func (w *Ward) Summary() WardSummary {
	return WardSummary{
		ID:                w.ID,
		Name:              w.Name,
		Type:              w.Type,
		WardGender:        w.WardGender,
		TotalBeds:         w.TotalBeds,
		TotalOccupiedBeds: w.TotalOccupiedBeds,
	}
}
