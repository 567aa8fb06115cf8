package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWard(totalBeds int) *Ward {
	return &Ward{
		ID:         uuid.New(),
		Name:       "General Ward A",
		Type:       "General",
		TotalBeds:  totalBeds,
		WardGender: WardGenderMixed,
		IsActive:   true,
	}
}

func TestAssignPatient(t *testing.T) {
	ward := newTestWard(3)
	now := time.Now().UTC()
	patientID := uuid.New()

	require.NoError(t, ward.AssignPatient(patientID, 2, now))

	assert.Equal(t, 1, ward.TotalOccupiedBeds)
	require.Len(t, ward.Patients, 1)
	assert.Equal(t, patientID, ward.Patients[0].PatientID)
	assert.Equal(t, 2, ward.Patients[0].BedNumber)
	assert.True(t, ward.Patients[0].IsActive)
	assert.Equal(t, now, ward.Patients[0].AdmissionDate)
}

func TestAssignPatientWardFull(t *testing.T) {
	ward := newTestWard(1)
	now := time.Now().UTC()
	require.NoError(t, ward.AssignPatient(uuid.New(), 1, now))

	err := ward.AssignPatient(uuid.New(), 1, now)
	assert.ErrorIs(t, err, ErrWardFull)
	assert.Len(t, ward.Patients, 1)
	assert.Equal(t, 1, ward.TotalOccupiedBeds)
}

func TestAssignPatientBedOccupied(t *testing.T) {
	ward := newTestWard(3)
	now := time.Now().UTC()
	require.NoError(t, ward.AssignPatient(uuid.New(), 1, now))

	err := ward.AssignPatient(uuid.New(), 1, now)
	assert.ErrorIs(t, err, ErrBedOccupied)
	assert.Len(t, ward.Patients, 1)
}

func TestAssignPatientReusesReleasedBed(t *testing.T) {
	ward := newTestWard(2)
	now := time.Now().UTC()
	first := uuid.New()
	require.NoError(t, ward.AssignPatient(first, 1, now))
	require.NoError(t, ward.DischargePatient(first))

	second := uuid.New()
	require.NoError(t, ward.AssignPatient(second, 1, now))

	assert.Equal(t, 1, ward.TotalOccupiedBeds)
	// The discharged entry stays for audit.
	assert.Len(t, ward.Patients, 2)
}

func TestDischargePatient(t *testing.T) {
	ward := newTestWard(2)
	now := time.Now().UTC()
	patientID := uuid.New()
	require.NoError(t, ward.AssignPatient(patientID, 1, now))

	require.NoError(t, ward.DischargePatient(patientID))

	assert.Equal(t, 0, ward.TotalOccupiedBeds)
	require.Len(t, ward.Patients, 1)
	assert.False(t, ward.Patients[0].IsActive)
}

func TestDischargePatientNotInWard(t *testing.T) {
	ward := newTestWard(2)
	err := ward.DischargePatient(uuid.New())
	assert.ErrorIs(t, err, ErrNotInWard)
}

func TestTransferPatientWithinWard(t *testing.T) {
	ward := newTestWard(3)
	now := time.Now().UTC()
	patientID := uuid.New()
	require.NoError(t, ward.AssignPatient(patientID, 1, now))

	require.NoError(t, ward.TransferPatient(patientID, 3))

	require.Len(t, ward.Patients, 1)
	assert.Equal(t, 3, ward.Patients[0].BedNumber)
	assert.Equal(t, now, ward.Patients[0].AdmissionDate)
	assert.Equal(t, 1, ward.TotalOccupiedBeds)
}

func TestTransferPatientTargetBedOccupied(t *testing.T) {
	ward := newTestWard(3)
	now := time.Now().UTC()
	mover := uuid.New()
	require.NoError(t, ward.AssignPatient(mover, 1, now))
	require.NoError(t, ward.AssignPatient(uuid.New(), 2, now))

	err := ward.TransferPatient(mover, 2)
	assert.ErrorIs(t, err, ErrBedOccupied)
	assert.Equal(t, 1, ward.Patients[0].BedNumber)
}

func TestTransferPatientNotInWard(t *testing.T) {
	ward := newTestWard(3)
	err := ward.TransferPatient(uuid.New(), 2)
	assert.ErrorIs(t, err, ErrNotInWard)
}

func TestOccupancySnapshot(t *testing.T) {
	ward := newTestWard(4)
	now := time.Now().UTC()
	require.NoError(t, ward.AssignPatient(uuid.New(), 3, now))
	require.NoError(t, ward.AssignPatient(uuid.New(), 1, now))

	occ := ward.Occupancy()

	assert.Equal(t, 4, occ.TotalBeds)
	assert.Equal(t, 2, occ.OccupiedBeds)
	assert.Equal(t, 2, occ.AvailableBeds)
	assert.Equal(t, 50, occ.OccupancyPercentage)
	assert.Equal(t, []int{1, 3}, occ.OccupiedBedNumbers)
	assert.Equal(t, []int{2, 4}, occ.AvailableBedNumbers)
}

func TestOccupancyPercentageRounds(t *testing.T) {
	ward := newTestWard(3)
	now := time.Now().UTC()
	require.NoError(t, ward.AssignPatient(uuid.New(), 1, now))

	// 1/3 rounds to 33, 2/3 rounds to 67.
	assert.Equal(t, 33, ward.Occupancy().OccupancyPercentage)
	require.NoError(t, ward.AssignPatient(uuid.New(), 2, now))
	assert.Equal(t, 67, ward.Occupancy().OccupancyPercentage)
}

func TestOccupancyZeroBeds(t *testing.T) {
	ward := newTestWard(0)
	occ := ward.Occupancy()
	assert.Equal(t, 0, occ.OccupancyPercentage)
	assert.Equal(t, 0, occ.AvailableBeds)
	assert.Empty(t, occ.AvailableBedNumbers)
}

func TestBeforeSaveRecountsOccupied(t *testing.T) {
	ward := newTestWard(2)
	now := time.Now().UTC()
	require.NoError(t, ward.AssignPatient(uuid.New(), 1, now))

	// A stale caller-set count is overwritten on save.
	ward.TotalOccupiedBeds = 99
	require.NoError(t, ward.BeforeSave(nil))
	assert.Equal(t, 1, ward.TotalOccupiedBeds)
}

func TestWardLifecycle(t *testing.T) {
	ward := newTestWard(2)
	now := time.Now().UTC()
	p1 := uuid.New()
	p2 := uuid.New()

	require.NoError(t, ward.AssignPatient(p1, 1, now))
	require.NoError(t, ward.AssignPatient(p2, 2, now))
	assert.ErrorIs(t, ward.AssignPatient(uuid.New(), 1, now), ErrWardFull)

	require.NoError(t, ward.DischargePatient(p1))
	assert.Equal(t, 1, ward.TotalOccupiedBeds)
	assert.Equal(t, []int{1}, ward.Occupancy().AvailableBedNumbers)

	p3 := uuid.New()
	require.NoError(t, ward.AssignPatient(p3, 1, now))
	assert.Equal(t, 2, ward.TotalOccupiedBeds)
	assert.Equal(t, 100, ward.Occupancy().OccupancyPercentage)
}
