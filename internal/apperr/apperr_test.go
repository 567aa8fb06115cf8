package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("ward not found")))
	assert.Equal(t, KindInvalid, KindOf(Invalid("name is required")))
	assert.Equal(t, KindConflict, KindOf(Conflict("bed is already occupied")))
	assert.Equal(t, KindUnavailable, KindOf(Unavailable(errors.New("dial tcp"), "query failed")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("assigning patient: %w", Conflict("ward is full"))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable(cause, "listing wards")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "listing wards")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("%s not found", "doctor")
	assert.Equal(t, "doctor not found", err.Error())
}
