package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/cache"
	"github.com/careaxis/hospital-admin-api/internal/models"
)

type wardFixture struct {
	svc      *WardService
	db       *fakeDB
	wards    *fakeWardStore
	patients *fakePatientStore
}

func newWardFixture(t *testing.T) *wardFixture {
	db := &fakeDB{}
	wards := newFakeWardStore()
	patients := newFakePatientStore()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })
	return &wardFixture{
		svc:      NewWardService(db, wards, patients, mc),
		db:       db,
		wards:    wards,
		patients: patients,
	}
}

func baseWardRequest() *models.WardRequest {
	gender := models.WardGenderMixed
	return &models.WardRequest{
		Name:       strPtr("General Ward A"),
		Type:       strPtr("General"),
		TotalBeds:  intPtr(4),
		WardGender: &gender,
	}
}

func occupyBed(t *testing.T, wards *fakeWardStore, wardID uuid.UUID, bed int) {
	t.Helper()
	ctx := context.Background()
	ward, err := wards.GetByID(ctx, wardID)
	require.NoError(t, err)
	require.NoError(t, ward.AssignPatient(uuid.New(), bed, time.Now().UTC()))
	require.NoError(t, wards.Save(ctx, ward))
}

func TestWardCreate(t *testing.T) {
	f := newWardFixture(t)

	ward, err := f.svc.Create(context.Background(), baseWardRequest())
	require.NoError(t, err)
	assert.Equal(t, "General Ward A", ward.Name)
	assert.Equal(t, 4, ward.TotalBeds)
	assert.True(t, ward.IsActive)
}

func TestWardCreateInvalidGender(t *testing.T) {
	f := newWardFixture(t)
	req := baseWardRequest()
	bad := models.WardGender("Other")
	req.WardGender = &bad

	_, err := f.svc.Create(context.Background(), req)
	assert.True(t, apperr.IsInvalid(err))
}

func TestWardUpdateCannotReduceBelowOccupancy(t *testing.T) {
	f := newWardFixture(t)
	ctx := context.Background()
	ward, err := f.svc.Create(ctx, baseWardRequest())
	require.NoError(t, err)
	occupyBed(t, f.wards, ward.ID, 1)
	occupyBed(t, f.wards, ward.ID, 2)

	_, err = f.svc.Update(ctx, ward.ID, &models.WardRequest{TotalBeds: intPtr(1)})
	assert.True(t, apperr.IsConflict(err))

	shrunk, err := f.svc.Update(ctx, ward.ID, &models.WardRequest{TotalBeds: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, shrunk.TotalBeds)
}

func TestWardUpdateRenameRefreshesPatientCopies(t *testing.T) {
	f := newWardFixture(t)
	ctx := context.Background()
	ward, err := f.svc.Create(ctx, baseWardRequest())
	require.NoError(t, err)

	oldName := ward.Name
	patient := &models.Patient{
		Name:             "Ama Mensah",
		DateOfBirth:      "1990-04-12",
		Gender:           "Female",
		Contact:          "+233201234567",
		IsActive:         true,
		AssignedWardID:   &ward.ID,
		AssignedWardName: &oldName,
	}
	require.NoError(t, f.patients.Create(ctx, patient))

	_, err = f.svc.Update(ctx, ward.ID, &models.WardRequest{Name: strPtr("General Ward Alpha")})
	require.NoError(t, err)

	stored, err := f.patients.GetByID(ctx, patient.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssignedWardName)
	assert.Equal(t, "General Ward Alpha", *stored.AssignedWardName)
}

func TestWardDeleteBlockedWhileOccupied(t *testing.T) {
	f := newWardFixture(t)
	ctx := context.Background()
	ward, err := f.svc.Create(ctx, baseWardRequest())
	require.NoError(t, err)
	occupyBed(t, f.wards, ward.ID, 1)

	err = f.svc.Delete(ctx, ward.ID)
	assert.True(t, apperr.IsConflict(err))

	_, err = f.wards.GetByID(ctx, ward.ID)
	assert.NoError(t, err)
}

func TestWardDeleteEmpty(t *testing.T) {
	f := newWardFixture(t)
	ctx := context.Background()
	ward, err := f.svc.Create(ctx, baseWardRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, ward.ID))

	_, err = f.wards.GetByID(ctx, ward.ID)
	assert.True(t, apperr.IsNotFound(err))
}
