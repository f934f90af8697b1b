package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusPredicates(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		terminal bool
		occupies bool
	}{
		{StatusPending, false, true},
		{StatusConfirmed, false, true},
		{StatusRescheduleRequested, false, true},
		{StatusCompleted, true, false},
		{StatusCancelled, true, false},
		{StatusNoShow, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.True(t, tt.status.IsValid())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.occupies, tt.status.Occupies())
		})
	}

	unknown := BookingStatus("archived")
	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.Occupies())
}

func TestBookingOverlapsInterval(t *testing.T) {
	b := Booking{Start: 600, End: 660}

	assert.True(t, b.OverlapsInterval(600, 660), "identical interval")
	assert.True(t, b.OverlapsInterval(630, 690), "partial overlap right")
	assert.True(t, b.OverlapsInterval(570, 630), "partial overlap left")
	assert.True(t, b.OverlapsInterval(570, 690), "containing interval")
	assert.True(t, b.OverlapsInterval(615, 645), "contained interval")

	assert.False(t, b.OverlapsInterval(540, 600), "touching on the left")
	assert.False(t, b.OverlapsInterval(660, 720), "touching on the right")
	assert.False(t, b.OverlapsInterval(400, 500), "disjoint")
}

func TestBookingDuration(t *testing.T) {
	b := Booking{Start: 600, End: 690}
	assert.Equal(t, 90, b.Duration())
}
