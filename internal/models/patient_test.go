package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStay(t *testing.T) {
	p := &Patient{ID: uuid.New()}
	assert.Nil(t, p.CurrentStay())

	now := time.Now().UTC()
	wardID := uuid.New()
	p.OpenStay(wardID, "ICU", 4, "Initial admission", now)

	stay := p.CurrentStay()
	require.NotNil(t, stay)
	assert.Equal(t, wardID, stay.WardID)
	assert.Equal(t, "ICU", stay.WardName)
	assert.Equal(t, 4, stay.BedNumber)
	assert.Equal(t, "Initial admission", stay.Reason)
	assert.Nil(t, stay.DischargedDate)
}

func TestCloseStay(t *testing.T) {
	p := &Patient{ID: uuid.New()}
	now := time.Now().UTC()
	p.OpenStay(uuid.New(), "ICU", 1, "", now)

	later := now.Add(48 * time.Hour)
	p.CloseStay(later)

	assert.Nil(t, p.CurrentStay())
	require.Len(t, p.WardHistory, 1)
	require.NotNil(t, p.WardHistory[0].DischargedDate)
	assert.Equal(t, later, *p.WardHistory[0].DischargedDate)
}

func TestCloseStayWithoutOpenStay(t *testing.T) {
	p := &Patient{ID: uuid.New()}
	now := time.Now().UTC()
	p.OpenStay(uuid.New(), "ICU", 1, "", now)
	p.CloseStay(now)

	// A second close is a no-op.
	p.CloseStay(now.Add(time.Hour))
	assert.Equal(t, now, *p.WardHistory[0].DischargedDate)
}

func TestTransferHistoryOrdering(t *testing.T) {
	p := &Patient{ID: uuid.New()}
	t0 := time.Now().UTC()
	p.OpenStay(uuid.New(), "General Ward A", 1, "Initial admission", t0)

	t1 := t0.Add(24 * time.Hour)
	p.CloseStay(t1)
	icuID := uuid.New()
	p.OpenStay(icuID, "ICU", 2, "Ward transfer", t1)

	require.Len(t, p.WardHistory, 2)
	assert.NotNil(t, p.WardHistory[0].DischargedDate)
	stay := p.CurrentStay()
	require.NotNil(t, stay)
	assert.Equal(t, icuID, stay.WardID)
	assert.Equal(t, "Ward transfer", stay.Reason)
}

func TestClearWardAssignment(t *testing.T) {
	wardID := uuid.New()
	name := "ICU"
	bed := 3
	p := &Patient{
		ID:               uuid.New(),
		AssignedWardID:   &wardID,
		AssignedWardName: &name,
		BedNumber:        &bed,
	}

	p.ClearWardAssignment()

	assert.Nil(t, p.AssignedWardID)
	assert.Nil(t, p.AssignedWardName)
	assert.Nil(t, p.BedNumber)
}

func TestWardAssignmentDays(t *testing.T) {
	now := time.Now().UTC()

	p := &Patient{ID: uuid.New()}
	assert.Equal(t, 0, p.WardAssignmentDays(now))

	admitted := now.Add(-36 * time.Hour)
	p.AdmissionDate = &admitted
	// Partial days round up.
	assert.Equal(t, 2, p.WardAssignmentDays(now))

	admitted = now.Add(-72 * time.Hour)
	assert.Equal(t, 3, p.WardAssignmentDays(now))
}

func TestPatientSummary(t *testing.T) {
	p := &Patient{ID: uuid.New(), Name: "Ama Mensah", Gender: "Female", Contact: "+233201234567"}
	s := p.Summary()
	assert.Equal(t, p.ID, s.ID)
	assert.Equal(t, "Ama Mensah", s.Name)
	assert.Equal(t, "Female", s.Gender)
}
