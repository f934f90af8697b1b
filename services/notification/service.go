package notification

import (
	"context"
	"fmt"
	"time"

	"quikka/models"
	"quikka/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService records booking updates in the structured log.
// Real SMS/email delivery is an external concern; swapping in a gateway means
// implementing NotificationService against a provider SDK.
type DefaultNotificationService struct{}

func formatBookingDateTime(dateStr string, minutesFromMidnight int) (string, error) {
	bookingDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", err
	}
	bookingTime := bookingDate.Add(time.Duration(minutesFromMidnight) * time.Minute)
	return bookingTime.Format("2 January, 3:04 PM"), nil
}

func statusMessage(b *models.Booking, when string) string {
	switch b.Status {
	case models.StatusConfirmed:
		return fmt.Sprintf("Your appointment on %s has been confirmed.", when)
	case models.StatusPending:
		return fmt.Sprintf("Your appointment request for %s has been received and is awaiting confirmation.", when)
	case models.StatusCancelled:
		return fmt.Sprintf("Your appointment on %s has been cancelled.", when)
	case models.StatusRescheduleRequested:
		return fmt.Sprintf("A reschedule has been requested for your appointment on %s.", when)
	default:
		return fmt.Sprintf("Your appointment on %s is now %s.", when, b.Status)
	}
}

func (s *DefaultNotificationService) NotifyBookingStatus(ctx context.Context, b *models.Booking) error {
	when, err := formatBookingDateTime(b.Date, b.Start)
	if err != nil {
		return fmt.Errorf("failed to format booking time: %w", err)
	}
	utils.GetLogger().Info("booking notification",
		zap.String("bookingID", b.ID),
		zap.String("providerID", b.ProviderID),
		zap.String("clientPhone", b.ClientPhone),
		zap.String("status", string(b.Status)),
		zap.String("message", statusMessage(b, when)),
	)
	return nil
}

func (s *DefaultNotificationService) NotifyBookingReminder(ctx context.Context, p models.ReminderPayload) error {
	when, err := formatBookingDateTime(p.Date, p.Start)
	if err != nil {
		return fmt.Errorf("failed to format booking time: %w", err)
	}
	utils.GetLogger().Info("booking reminder",
		zap.String("bookingID", p.BookingID),
		zap.String("clientPhone", p.ClientPhone),
		zap.String("message", fmt.Sprintf("Reminder: %s, your appointment is on %s.", p.ClientName, when)),
	)
	return nil
}
