package domain

import (
	"testing"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateOf(year int, month time.Month, day int) openapitypes.Date {
	return openapitypes.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func TestNewShift(t *testing.T) {
	shift, err := NewShift(dateOf(2024, 3, 18), "Shift_1", "16:00:00")
	require.NoError(t, err)
	assert.True(t, shift.IsActive)
	assert.False(t, shift.Ended())

	_, err = NewShift(dateOf(2024, 3, 18), "  ", "16:00:00")
	assert.ErrorIs(t, err, ErrInvalidLabel)

	_, err = NewShift(dateOf(2024, 3, 18), "Shift_1", "4pm")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestShiftEnd(t *testing.T) {
	shift, err := NewShift(dateOf(2024, 3, 18), "Shift_1", "16:00:00")
	require.NoError(t, err)

	require.NoError(t, shift.End("23:30:00"))
	assert.True(t, shift.Ended())
	assert.False(t, shift.IsActive)

	assert.ErrorIs(t, shift.End("23:45:00"), ErrAlreadyEnded)

	open, err := NewShift(dateOf(2024, 3, 18), "Shift_2", "16:00:00")
	require.NoError(t, err)
	assert.ErrorIs(t, open.End("bad"), ErrInvalidTimeOfDay)
}

func TestShiftDuration(t *testing.T) {
	now := time.Date(2024, 3, 18, 20, 0, 0, 0, time.UTC)

	t.Run("ended same day", func(t *testing.T) {
		shift, err := NewShift(dateOf(2024, 3, 18), "Shift_1", "16:00:00")
		require.NoError(t, err)
		require.NoError(t, shift.End("23:30:00"))

		span, err := shift.Duration(now)
		require.NoError(t, err)
		assert.Equal(t, 7*time.Hour+30*time.Minute, span)
	})

	t.Run("crosses midnight", func(t *testing.T) {
		shift, err := NewShift(dateOf(2024, 3, 18), "Shift_2", "18:00:00")
		require.NoError(t, err)
		require.NoError(t, shift.End("02:00:00"))

		span, err := shift.Duration(now)
		require.NoError(t, err)
		assert.Equal(t, 8*time.Hour, span)
	})

	t.Run("open shift uses provisional end", func(t *testing.T) {
		shift, err := NewShift(dateOf(2024, 3, 18), "Shift_3", "16:00:00")
		require.NoError(t, err)

		span, err := shift.Duration(now)
		require.NoError(t, err)
		assert.Equal(t, 4*time.Hour, span)
	})
}

func TestShiftToggleActive(t *testing.T) {
	shift, err := NewShift(dateOf(2024, 3, 18), "Shift_1", "16:00:00")
	require.NoError(t, err)
	require.NoError(t, shift.ToggleActive())
	assert.False(t, shift.IsActive)
	require.NoError(t, shift.ToggleActive())
	assert.True(t, shift.IsActive)

	require.NoError(t, shift.End("23:30:00"))
	err = shift.ToggleActive()
	assert.ErrorIs(t, err, ErrAlreadyEnded)
	assert.False(t, shift.IsActive)
}
