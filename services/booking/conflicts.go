package booking

import "quikka/models"

// FilterConflicts removes every candidate start whose half-open interval
// [start, start+duration) intersects an occupying booking. Touching endpoints
// do not conflict, so back-to-back appointments are allowed. Input order is
// preserved; cancelled/completed/no-show bookings are ignored. Pure function,
// no I/O.
func FilterConflicts(candidates []int, duration int, existing []models.Booking) []int {
	out := make([]int, 0, len(candidates))
	for _, start := range candidates {
		if !hasConflict(start, start+duration, existing) {
			out = append(out, start)
		}
	}
	return out
}

// hasConflict reports whether [start, end) overlaps any occupying booking.
func hasConflict(start, end int, existing []models.Booking) bool {
	for i := range existing {
		b := &existing[i]
		if !b.Status.Occupies() {
			continue
		}
		if b.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}

// hasConflictExcluding is hasConflict, ignoring the booking with the given ID.
// Used when re-checking a reschedule target: the booking's own original
// interval must not block its proposed one.
func hasConflictExcluding(start, end int, existing []models.Booking, excludeID string) bool {
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID || !b.Status.Occupies() {
			continue
		}
		if b.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}
