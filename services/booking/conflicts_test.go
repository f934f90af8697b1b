package booking

import (
	"testing"

	"quikka/models"

	"github.com/stretchr/testify/assert"
)

func booked(start, end int, status models.BookingStatus) models.Booking {
	return models.Booking{ID: "b", ProviderID: "p", Date: "2026-03-02", Start: start, End: end, Status: status}
}

func TestFilterConflicts(t *testing.T) {
	tests := []struct {
		name       string
		candidates []int
		duration   int
		existing   []models.Booking
		want       []int
	}{
		{
			name:       "no bookings keeps everything",
			candidates: []int{600, 630, 660},
			duration:   30,
			existing:   nil,
			want:       []int{600, 630, 660},
		},
		{
			name:       "overlapping candidates excluded",
			candidates: []int{600, 630},
			duration:   60,
			existing:   []models.Booking{booked(600, 660, models.StatusConfirmed)},
			want:       []int{},
		},
		{
			name:       "touching endpoints do not conflict",
			candidates: []int{540, 600, 660},
			duration:   60,
			existing:   []models.Booking{booked(600, 660, models.StatusConfirmed)},
			want:       []int{540, 660},
		},
		{
			name:       "terminal bookings release their interval",
			candidates: []int{600, 630},
			duration:   60,
			existing: []models.Booking{
				booked(600, 660, models.StatusCancelled),
				booked(600, 660, models.StatusCompleted),
				booked(600, 660, models.StatusNoShow),
			},
			want: []int{600, 630},
		},
		{
			name:       "pending and reschedule requested still occupy",
			candidates: []int{600, 660},
			duration:   60,
			existing: []models.Booking{
				booked(600, 660, models.StatusPending),
				booked(660, 720, models.StatusRescheduleRequested),
			},
			want: []int{},
		},
		{
			name:       "order preserved around exclusions",
			candidates: []int{540, 570, 600, 630, 660, 690},
			duration:   30,
			existing:   []models.Booking{booked(600, 660, models.StatusConfirmed)},
			want:       []int{540, 570, 660, 690},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterConflicts(tt.candidates, tt.duration, tt.existing)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every excluded candidate must overlap at least one occupying booking, and
// every kept candidate must overlap none. The filter is an exact complement,
// never an approximation.
func TestFilterConflictsExactComplement(t *testing.T) {
	duration := 45
	candidates := CandidateStarts(models.DayWindow{Open: 480, Close: 1080}, duration, 15, 0)
	existing := []models.Booking{
		booked(510, 570, models.StatusConfirmed),
		booked(700, 745, models.StatusPending),
		booked(900, 990, models.StatusCancelled),
	}

	kept := make(map[int]bool)
	for _, s := range FilterConflicts(candidates, duration, existing) {
		kept[s] = true
	}

	overlapsAny := func(start int) bool {
		for _, b := range existing {
			if !b.Status.Occupies() {
				continue
			}
			if b.OverlapsInterval(start, start+duration) {
				return true
			}
		}
		return false
	}

	for _, s := range candidates {
		if kept[s] {
			assert.False(t, overlapsAny(s), "kept candidate %d overlaps a booking", s)
		} else {
			assert.True(t, overlapsAny(s), "candidate %d was excluded without an overlapping booking", s)
		}
	}
}
