package booking

import "quikka/models"

// CandidateStarts generates the ordered candidate start times for a resolved
// day window. Each candidate is a multiple of granularity, starts at or after
// open, ends before close, and is no earlier than earliest (minutes from
// midnight; pass 0 when the date is not today). A closed window or an
// oversized duration yields an empty sequence, not an error. The result is
// strictly ascending and deterministic for fixed inputs.
func CandidateStarts(win models.DayWindow, duration, granularity, earliest int) []int {
	if duration <= 0 || granularity <= 0 {
		return nil
	}
	if duration > win.Length() {
		return nil
	}

	first := win.Open
	if earliest > first {
		first = earliest
	}
	// Snap up to the granularity grid.
	if rem := first % granularity; rem != 0 {
		first += granularity - rem
	}

	var starts []int
	for s := first; s+duration < win.Close; s += granularity {
		starts = append(starts, s)
	}
	return starts
}
