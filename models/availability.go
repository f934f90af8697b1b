package models

import (
	"fmt"
	"time"
)

// DayWindow is a single open interval within a day, in minutes from midnight.
type DayWindow struct {
	Open  int `bson:"open" json:"open"`   // e.g., 600 for 10:00
	Close int `bson:"close" json:"close"` // e.g., 1020 for 17:00
}

// Length returns the window length in minutes.
func (w DayWindow) Length() int {
	return w.Close - w.Open
}

// DateOverride replaces the weekday default for one calendar date.
// A closed override wins over any window; a non-closed override must carry a window.
type DateOverride struct {
	Closed bool       `bson:"closed" json:"closed"`
	Window *DayWindow `bson:"window,omitempty" json:"window,omitempty"`
}

// AvailabilityRule holds a provider's recurring weekly open hours plus
// date-specific overrides. Weekday keys are lowercase English names
// ("monday".."sunday"); an absent weekday means closed. Override keys are
// dates in "YYYY-MM-DD" format and take precedence for their exact date.
type AvailabilityRule struct {
	ProviderID string                  `bson:"provider_id" json:"provider_id"`
	Weekly     map[string]DayWindow    `bson:"weekly" json:"weekly"`
	Overrides  map[string]DateOverride `bson:"overrides,omitempty" json:"overrides,omitempty"`
	UpdatedAt  time.Time               `bson:"updated_at" json:"updated_at"`
}

// WeekdayKey converts a time.Weekday into the map key used by Weekly.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return ""
}

// Validate checks every window in the rule for open < close and in-day bounds.
func (r *AvailabilityRule) Validate() error {
	check := func(where string, w DayWindow) error {
		if w.Open < 0 || w.Close > 24*60 {
			return fmt.Errorf("window for %s is out of day bounds [%d, %d]", where, w.Open, w.Close)
		}
		if w.Open >= w.Close {
			return fmt.Errorf("window for %s has open >= close [%d, %d]", where, w.Open, w.Close)
		}
		return nil
	}
	for day, w := range r.Weekly {
		if err := check(day, w); err != nil {
			return err
		}
	}
	for date, ov := range r.Overrides {
		if ov.Closed {
			continue
		}
		if ov.Window == nil {
			return fmt.Errorf("override for %s is neither closed nor carries a window", date)
		}
		if err := check(date, *ov.Window); err != nil {
			return err
		}
	}
	return nil
}

// WindowFor resolves the open window for a calendar date: the date override if
// present, else the weekday default. The second return is false when the
// provider is closed on that date.
func (r *AvailabilityRule) WindowFor(date string, loc *time.Location) (DayWindow, bool, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return DayWindow{}, false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if ov, ok := r.Overrides[date]; ok {
		if ov.Closed || ov.Window == nil {
			return DayWindow{}, false, nil
		}
		return *ov.Window, true, nil
	}
	w, ok := r.Weekly[WeekdayKey(day.Weekday())]
	if !ok {
		return DayWindow{}, false, nil
	}
	return w, true, nil
}
