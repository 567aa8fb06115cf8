package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/cache"
	"github.com/careaxis/hospital-admin-api/internal/metrics"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// AdmissionService coordinates the patient side and the ward side of an
// admission. Every mutation validates first, then applies both writes inside
// one transaction: a failure anywhere rolls back everything.
type AdmissionService struct {
	viewBuilder
	db       Transactor
	patients repository.PatientStore
	wards    repository.WardStore
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewAdmissionService(
	db Transactor,
	patients repository.PatientStore,
	wards repository.WardStore,
	teams repository.TeamStore,
	c cache.Cache,
	cacheTTL time.Duration,
) *AdmissionService {
	return &AdmissionService{
		viewBuilder: viewBuilder{wards: wards, teams: teams},
		db:          db,
		patients:    patients,
		wards:       wards,
		cache:       c,
		cacheTTL:    cacheTTL,
	}
}

// AssignmentResult is the response for the three workflow mutations.
type AssignmentResult struct {
	Message string       `json:"message"`
	Patient *PatientView `json:"patient"`
	Ward    *models.Ward `json:"ward,omitempty"`
}

// applyAssignment locks the ward, books the bed and stamps the patient's
// ward linkage plus a new open history entry. The caller persists the
// patient.
func applyAssignment(
	ctx context.Context,
	tx *gorm.DB,
	wards repository.WardStore,
	patient *models.Patient,
	wardID uuid.UUID,
	bedNumber int,
	reason string,
	now time.Time,
) (*models.Ward, error) {
	ward, err := wards.WithTx(tx).GetByIDForUpdate(ctx, wardID)
	if err != nil {
		return nil, err
	}
	if err := ward.AssignPatient(patient.ID, bedNumber, now); err != nil {
		return nil, err
	}
	if err := wards.WithTx(tx).Save(ctx, ward); err != nil {
		return nil, err
	}

	patient.AssignedWardID = &ward.ID
	patient.AssignedWardName = &ward.Name
	patient.BedNumber = &bedNumber
	patient.OpenStay(ward.ID, ward.Name, bedNumber, reason, now)
	return ward, nil
}

func reasonOrDefault(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}

// Assign admits an unassigned patient into a ward bed.
func (s *AdmissionService) Assign(ctx context.Context, req *models.AssignWardRequest) (*AssignmentResult, error) {
	if req.PatientID == uuid.Nil || req.WardID == uuid.Nil {
		return nil, apperr.Invalid("patientId and wardId are required")
	}
	if req.BedNumber < 1 {
		return nil, apperr.Invalid("bedNumber must be a positive bed number")
	}

	now := time.Now().UTC()
	var patient *models.Patient
	var ward *models.Ward
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.patients.WithTx(tx).GetByIDForUpdate(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if p.AssignedWardID != nil {
			return apperr.Conflict("patient is already assigned to a ward")
		}

		w, err := applyAssignment(ctx, tx, s.wards, p, req.WardID, req.BedNumber,
			reasonOrDefault(req.Reason, "Initial admission"), now)
		if err != nil {
			return err
		}
		p.AdmissionDate = &now
		if err := s.patients.WithTx(tx).Save(ctx, p); err != nil {
			return err
		}

		patient, ward = p, w
		return nil
	})
	metrics.ObserveWardOperation("assign", err)
	if err != nil {
		return nil, err
	}
	s.afterWardChange(ctx, ward)

	view, err := s.patientView(ctx, patient)
	if err != nil {
		return nil, err
	}
	return &AssignmentResult{Message: "Patient assigned to ward successfully.", Patient: view, Ward: ward}, nil
}

// Transfer moves an assigned patient into a bed in another ward (or another
// bed of the same ward), closing the open history entry and opening a new
// one.
func (s *AdmissionService) Transfer(ctx context.Context, req *models.TransferWardRequest) (*AssignmentResult, error) {
	if req.PatientID == uuid.Nil || req.NewWardID == uuid.Nil {
		return nil, apperr.Invalid("patientId and newWardId are required")
	}
	if req.BedNumber < 1 {
		return nil, apperr.Invalid("bedNumber must be a positive bed number")
	}

	now := time.Now().UTC()
	reason := reasonOrDefault(req.Reason, "Ward transfer")
	var patient *models.Patient
	var newWard *models.Ward
	var touched []*models.Ward
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.patients.WithTx(tx).GetByIDForUpdate(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if p.AssignedWardID == nil {
			return apperr.Conflict("patient is not currently assigned to any ward")
		}
		currentWardID := *p.AssignedWardID

		if currentWardID == req.NewWardID {
			// Same ward: a bed move on the single locked row.
			ward, err := s.wards.WithTx(tx).GetByIDForUpdate(ctx, currentWardID)
			if err != nil {
				return err
			}
			if err := ward.TransferPatient(p.ID, req.BedNumber); err != nil {
				return err
			}
			if err := s.wards.WithTx(tx).Save(ctx, ward); err != nil {
				return err
			}
			p.CloseStay(now)
			p.AssignedWardName = &ward.Name
			p.BedNumber = &req.BedNumber
			p.OpenStay(ward.ID, ward.Name, req.BedNumber, reason, now)
			newWard = ward
			touched = []*models.Ward{ward}
		} else {
			current, err := s.wards.WithTx(tx).GetByIDForUpdate(ctx, currentWardID)
			if err != nil {
				return err
			}
			if err := current.DischargePatient(p.ID); err != nil {
				return err
			}
			if err := s.wards.WithTx(tx).Save(ctx, current); err != nil {
				return err
			}
			p.CloseStay(now)

			w, err := applyAssignment(ctx, tx, s.wards, p, req.NewWardID, req.BedNumber, reason, now)
			if err != nil {
				return err
			}
			newWard = w
			touched = []*models.Ward{current, w}
		}

		if err := s.patients.WithTx(tx).Save(ctx, p); err != nil {
			return err
		}
		patient = p
		return nil
	})
	metrics.ObserveWardOperation("transfer", err)
	if err != nil {
		return nil, err
	}
	for _, w := range touched {
		s.afterWardChange(ctx, w)
	}

	view, err := s.patientView(ctx, patient)
	if err != nil {
		return nil, err
	}
	return &AssignmentResult{Message: "Patient transferred successfully.", Patient: view, Ward: newWard}, nil
}

// Discharge releases the patient's bed, closes the open history entry and
// deactivates the patient.
func (s *AdmissionService) Discharge(ctx context.Context, req *models.DischargeRequest) (*AssignmentResult, error) {
	if req.PatientID == uuid.Nil {
		return nil, apperr.Invalid("patientId is required")
	}

	now := time.Now().UTC()
	var patient *models.Patient
	var ward *models.Ward
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.patients.WithTx(tx).GetByIDForUpdate(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if p.AssignedWardID == nil {
			return apperr.Conflict("patient is not currently assigned to any ward")
		}

		w, err := s.wards.WithTx(tx).GetByIDForUpdate(ctx, *p.AssignedWardID)
		if err != nil {
			return err
		}
		if err := w.DischargePatient(p.ID); err != nil {
			return err
		}
		if err := s.wards.WithTx(tx).Save(ctx, w); err != nil {
			return err
		}

		p.CloseStay(now)
		if req.Reason != "" {
			if stay := lastStay(p); stay != nil && stay.Reason == "" {
				stay.Reason = req.Reason
			}
		}
		p.ClearWardAssignment()
		p.DischargeDate = &now
		p.IsActive = false
		if err := s.patients.WithTx(tx).Save(ctx, p); err != nil {
			return err
		}

		patient, ward = p, w
		return nil
	})
	metrics.ObserveWardOperation("discharge", err)
	if err != nil {
		return nil, err
	}
	s.afterWardChange(ctx, ward)

	view, err := s.patientView(ctx, patient)
	if err != nil {
		return nil, err
	}
	return &AssignmentResult{Message: "Patient discharged successfully.", Patient: view}, nil
}

func lastStay(p *models.Patient) *models.WardHistoryEntry {
	if len(p.WardHistory) == 0 {
		return nil
	}
	return &p.WardHistory[len(p.WardHistory)-1]
}

// afterWardChange invalidates the ward's cached occupancy snapshot and
// refreshes the occupancy gauge.
func (s *AdmissionService) afterWardChange(ctx context.Context, ward *models.Ward) {
	if err := s.cache.Delete(ctx, cache.OccupancyKey(ward.ID)); err != nil {
		log.Warn().Err(err).Str("ward_id", ward.ID.String()).Msg("Failed to invalidate occupancy cache")
	}
	metrics.OccupiedBeds.WithLabelValues(ward.Name).Set(float64(ward.TotalOccupiedBeds))
}

// WardRosterEntry is one active occupant expanded with the patient profile.
type WardRosterEntry struct {
	models.Patient
	BedNumber     int       `json:"bedNumber"`
	AdmissionDate time.Time `json:"admissionDate"`
}

// WardRosterView lists a ward's active occupants.
type WardRosterView struct {
	Ward     *models.Ward      `json:"ward"`
	Patients []WardRosterEntry `json:"patients"`
}

// WardRoster returns the ward with its active occupants expanded.
func (s *AdmissionService) WardRoster(ctx context.Context, wardID uuid.UUID) (*WardRosterView, error) {
	ward, err := s.wards.GetByID(ctx, wardID)
	if err != nil {
		return nil, err
	}
	entries, err := s.rosterEntries(ctx, ward)
	if err != nil {
		return nil, err
	}
	return &WardRosterView{Ward: ward, Patients: entries}, nil
}

// OccupancyView is the occupancy report for one ward.
type OccupancyView struct {
	Ward      *models.Ward             `json:"ward"`
	Occupancy models.OccupancySnapshot `json:"occupancy"`
	Patients  []WardRosterEntry        `json:"patients"`
}

// Occupancy returns the ward's occupancy snapshot with its roster, served
// from cache when a fresh copy exists.
func (s *AdmissionService) Occupancy(ctx context.Context, wardID uuid.UUID) (*OccupancyView, error) {
	key := cache.OccupancyKey(wardID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var view OccupancyView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	}

	ward, err := s.wards.GetByID(ctx, wardID)
	if err != nil {
		return nil, err
	}
	entries, err := s.rosterEntries(ctx, ward)
	if err != nil {
		return nil, err
	}
	view := &OccupancyView{Ward: ward, Occupancy: ward.Occupancy(), Patients: entries}

	if data, err := json.Marshal(view); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("ward_id", wardID.String()).Msg("Failed to cache occupancy snapshot")
		}
	}
	return view, nil
}

func (s *AdmissionService) rosterEntries(ctx context.Context, ward *models.Ward) ([]WardRosterEntry, error) {
	ids := make([]uuid.UUID, 0, len(ward.Patients))
	for i := range ward.Patients {
		if ward.Patients[i].IsActive {
			ids = append(ids, ward.Patients[i].PatientID)
		}
	}
	occupants, err := s.patients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Patient, len(occupants))
	for i := range occupants {
		byID[occupants[i].ID] = occupants[i]
	}

	entries := make([]WardRosterEntry, 0, len(ids))
	for i := range ward.Patients {
		entry := &ward.Patients[i]
		if !entry.IsActive {
			continue
		}
		occupant, ok := byID[entry.PatientID]
		if !ok {
			continue
		}
		entries = append(entries, WardRosterEntry{
			Patient:       occupant,
			BedNumber:     entry.BedNumber,
			AdmissionDate: entry.AdmissionDate,
		})
	}
	return entries, nil
}

// WardHistoryView is a patient's stay log plus the current-ward derivation.
type WardHistoryView struct {
	Patient     wardHistoryPatient        `json:"patient"`
	WardHistory []models.WardHistoryEntry `json:"wardHistory"`
}

type wardHistoryPatient struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	CurrentWard *models.WardHistoryEntry `json:"currentWard,omitempty"`
}

// History returns the patient's full ward-history trail.
func (s *AdmissionService) History(ctx context.Context, patientID uuid.UUID) (*WardHistoryView, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	history := patient.WardHistory
	if history == nil {
		history = []models.WardHistoryEntry{}
	}
	return &WardHistoryView{
		Patient: wardHistoryPatient{
			ID:          patient.ID,
			Name:        patient.Name,
			CurrentWard: patient.CurrentStay(),
		},
		WardHistory: history,
	}, nil
}
