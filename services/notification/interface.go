package notification

import (
	"context"

	"quikka/models"
)

// NotificationService is the delivery collaborator for booking updates.
// Delivery channels (SMS, email) plug in behind this interface; the engine
// only reports that a booking reached a new status.
type NotificationService interface {
	NotifyBookingStatus(ctx context.Context, b *models.Booking) error
	NotifyBookingReminder(ctx context.Context, p models.ReminderPayload) error
}
