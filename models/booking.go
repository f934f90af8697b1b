package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusRescheduleRequested BookingStatus = "reschedule_requested"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusNoShow              BookingStatus = "no_show"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsValid reports whether s is one of the known statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRescheduleRequested,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Occupies reports whether a booking in this status holds its time interval
// for conflict purposes. Terminal bookings release their interval.
func (s BookingStatus) Occupies() bool {
	return s.IsValid() && !s.IsTerminal()
}

// RescheduleRequest is the pending proposal attached to a booking in
// reschedule_requested status. PriorStatus records the status the booking
// held before the request so a decline can revert exactly.
type RescheduleRequest struct {
	ProposedDate  string        `bson:"proposed_date" json:"proposed_date"`   // "YYYY-MM-DD"
	ProposedStart int           `bson:"proposed_start" json:"proposed_start"` // minutes from midnight
	Reason        string        `bson:"reason,omitempty" json:"reason,omitempty"`
	RequestedBy   string        `bson:"requested_by" json:"requested_by"` // "client" or "stylist"
	PriorStatus   BookingStatus `bson:"prior_status" json:"prior_status"`
	RequestedAt   time.Time     `bson:"requested_at" json:"requested_at"`
}

// Booking represents one reservation against a provider's schedule.
// Start and End are minutes from midnight on Date; the occupied interval is
// half-open [Start, End), so back-to-back bookings may touch.
type Booking struct {
	ID          string             `bson:"id" json:"id"`
	ProviderID  string             `bson:"provider_id" json:"provider_id"`
	ClientName  string             `bson:"client_name" json:"client_name"`
	ClientPhone string             `bson:"client_phone" json:"client_phone"`
	ServiceID   string             `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Date        string             `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start       int                `bson:"start" json:"start"`
	End         int                `bson:"end" json:"end"`
	Status      BookingStatus      `bson:"status" json:"status"`
	Reschedule  *RescheduleRequest `bson:"reschedule,omitempty" json:"reschedule,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Duration returns the booked duration in minutes.
func (b *Booking) Duration() int {
	return b.End - b.Start
}

// OverlapsInterval tests the half-open interval [start, end) against the
// booking's own interval.
func (b *Booking) OverlapsInterval(start, end int) bool {
	return start < b.End && b.Start < end
}
