package models

// ReminderPayload is the task body for a scheduled appointment reminder.
type ReminderPayload struct {
	BookingID   string `json:"booking_id"`
	ProviderID  string `json:"provider_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Date        string `json:"date"`  // "YYYY-MM-DD"
	Start       int    `json:"start"` // minutes from midnight
}
