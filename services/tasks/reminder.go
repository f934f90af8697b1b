package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"quikka/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "reminder:booking"

// NewReminderTask builds an asynq task that fires at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders ahead of the booking time.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
	loc    *time.Location
}

func NewReminderScheduler(redisOpt asynq.RedisClientOpt, lead time.Duration, loc *time.Location) *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(redisOpt),
		lead:   lead,
		loc:    loc,
	}
}

// ScheduleBookingReminder enqueues a reminder lead time before the
// appointment. Appointments too close for the full lead time get no reminder.
func (s *ReminderScheduler) ScheduleBookingReminder(b *models.Booking) error {
	day, err := time.ParseInLocation("2006-01-02", b.Date, s.loc)
	if err != nil {
		return fmt.Errorf("invalid booking date %q: %w", b.Date, err)
	}
	fireAt := day.Add(time.Duration(b.Start)*time.Minute - s.lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID:   b.ID,
		ProviderID:  b.ProviderID,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		Date:        b.Date,
		Start:       b.Start,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}
