package models

import (
	"testing"
	"time"

	"bimber/constants"
	apperrors "bimber/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		action func(*Booking) error
		want   string
		ok     bool
	}{
		{"pending confirm", constants.BookingStatusPending, (*Booking).Confirm, constants.BookingStatusConfirmed, true},
		{"pending cancel", constants.BookingStatusPending, (*Booking).Cancel, constants.BookingStatusCancelled, true},
		{"pending complete", constants.BookingStatusPending, (*Booking).Complete, constants.BookingStatusPending, false},
		{"confirmed confirm", constants.BookingStatusConfirmed, (*Booking).Confirm, constants.BookingStatusConfirmed, false},
		{"confirmed cancel", constants.BookingStatusConfirmed, (*Booking).Cancel, constants.BookingStatusCancelled, true},
		{"confirmed complete", constants.BookingStatusConfirmed, (*Booking).Complete, constants.BookingStatusCompleted, true},
		{"cancelled cancel", constants.BookingStatusCancelled, (*Booking).Cancel, constants.BookingStatusCancelled, false},
		{"cancelled confirm", constants.BookingStatusCancelled, (*Booking).Confirm, constants.BookingStatusCancelled, false},
		{"completed cancel", constants.BookingStatusCompleted, (*Booking).Cancel, constants.BookingStatusCompleted, false},
		{"completed complete", constants.BookingStatusCompleted, (*Booking).Complete, constants.BookingStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := tt.action(b)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidOperation))
			}
			assert.Equal(t, tt.want, b.Status)
		})
	}
}

func TestBookingOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2030, 1, d, 0, 0, 0, 0, time.UTC) }
	b := &Booking{StartDate: day(10), EndDate: day(15)}

	assert.True(t, b.Overlaps(day(12), day(13)))
	assert.True(t, b.Overlaps(day(8), day(11)))
	assert.True(t, b.Overlaps(day(14), day(20)))
	assert.False(t, b.Overlaps(day(15), day(18)), "checkout day is free")
	assert.False(t, b.Overlaps(day(5), day(10)), "checkin day of the next guest")
	assert.Equal(t, 5, b.Nights())
}

func TestStateDisplayName(t *testing.T) {
	assert.Equal(t, "Akwa Ibom", StateAkwaIbom.DisplayName())
	assert.Equal(t, "FCT", StateFCT.DisplayName())
	assert.True(t, StateLagos.Valid())
	assert.False(t, State("ATLANTIS").Valid())
	assert.Len(t, AllStates(), 37)
}
