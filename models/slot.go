package models

// AvailableSlot is one bookable start time offered to the client.
type AvailableSlot struct {
	Start int    `json:"start"` // minutes from midnight
	End   int    `json:"end"`   // start + requested duration
	Label string `json:"label"` // e.g., "10:00 AM - 11:00 AM"
}
