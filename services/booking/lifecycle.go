package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "quikka/database/repository/booking"
	"quikka/models"
	"quikka/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event names a lifecycle operation on a booking.
type Event string

const (
	EventCreate            Event = "create"
	EventConfirm           Event = "confirm"
	EventCancel            Event = "cancel"
	EventComplete          Event = "complete"
	EventNoShow            Event = "no_show"
	EventRescheduleRequest Event = "reschedule_request"
	EventRescheduleApprove Event = "reschedule_approve"
	EventRescheduleDecline Event = "reschedule_decline"
)

// transitions is the full state machine: transitions[from][event] is the
// target status. Anything absent is an invalid transition. The decline target
// is resolved from the stored prior status, not this table.
var transitions = map[models.BookingStatus]map[Event]models.BookingStatus{
	models.StatusPending: {
		EventConfirm:           models.StatusConfirmed,
		EventCancel:            models.StatusCancelled,
		EventRescheduleRequest: models.StatusRescheduleRequested,
	},
	models.StatusConfirmed: {
		EventCancel:            models.StatusCancelled,
		EventComplete:          models.StatusCompleted,
		EventNoShow:            models.StatusNoShow,
		EventRescheduleRequest: models.StatusRescheduleRequested,
	},
	models.StatusRescheduleRequested: {
		EventRescheduleApprove: models.StatusConfirmed,
		EventRescheduleDecline: models.StatusConfirmed, // actual target is the stored prior status
	},
}

// nextStatus resolves the transition table, failing with
// InvalidTransitionError for anything not listed.
func nextStatus(from models.BookingStatus, event Event) (models.BookingStatus, error) {
	if allowed, ok := transitions[from]; ok {
		if to, ok := allowed[event]; ok {
			return to, nil
		}
	}
	return "", &InvalidTransitionError{Status: from, Event: event}
}

// CreateBookingRequest carries everything needed to create a booking. Start
// and Duration are minutes; Date is "YYYY-MM-DD" in the engine's zone.
type CreateBookingRequest struct {
	ProviderID  string
	ClientName  string
	ClientPhone string
	ServiceID   string
	Date        string
	Start       int
	Duration    int
}

// RescheduleProposal is the payload of a reschedule request.
type RescheduleProposal struct {
	Date        string
	Start       int
	Reason      string
	RequestedBy string // "client" or "stylist"
}

func (se *DefaultBookingEngine) validateCreate(req *CreateBookingRequest) error {
	if req.ProviderID == "" {
		return validationErrorf("provider id is required")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return validationErrorf("client name is required")
	}
	if strings.TrimSpace(req.ClientPhone) == "" {
		return validationErrorf("client phone is required")
	}
	if req.Duration <= 0 {
		return validationErrorf("duration must be positive, got %d", req.Duration)
	}
	if req.Start < 0 || req.Start >= 24*60 {
		return validationErrorf("start time %d is out of day bounds", req.Start)
	}
	if _, err := time.ParseInLocation("2006-01-02", req.Date, se.Location); err != nil {
		return validationErrorf("invalid date %q: want YYYY-MM-DD", req.Date)
	}
	return nil
}

// checkSlotOpen verifies that [start, start+duration) sits inside the
// provider's resolved window for the date and is not in the past. Failures
// are ErrSlotUnavailable: the request was well-formed, the time just cannot
// be booked.
func (se *DefaultBookingEngine) checkSlotOpen(ctx context.Context, providerID, date string, start, duration int) error {
	rule, err := se.resolveRule(ctx, providerID)
	if err != nil {
		return err
	}
	win, open, err := rule.WindowFor(date, se.Location)
	if err != nil {
		return validationErrorf("%v", err)
	}
	if !open {
		return ErrSlotUnavailable
	}
	if start < win.Open || start+duration >= win.Close {
		return ErrSlotUnavailable
	}
	if start < se.earliestStart(date, se.now()) {
		return ErrSlotUnavailable
	}
	return nil
}

// CreateBooking validates the request, re-checks the slot against the current
// ledger, and commits the new booking. Two concurrent creates for overlapping
// intervals resolve to exactly one success and one ErrSlotUnavailable: the
// ledger's transactional re-count decides the winner even if the day lock
// expires mid-flight.
func (se *DefaultBookingEngine) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := se.validateCreate(&req); err != nil {
		return nil, err
	}
	if err := se.checkSlotOpen(ctx, req.ProviderID, req.Date, req.Start, req.Duration); err != nil {
		return nil, err
	}

	release, err := se.lockDay(ctx, req.ProviderID, req.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := se.Ledger.GetNonTerminalBookings(ctx, req.ProviderID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking ledger: %w", err)
	}
	if hasConflict(req.Start, req.Start+req.Duration, existing) {
		return nil, ErrSlotUnavailable
	}

	status := models.StatusPending
	if se.AutoConfirm {
		status = models.StatusConfirmed
	}
	now := se.now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		ProviderID:  req.ProviderID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Start:       req.Start,
		End:         req.Start + req.Duration,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := se.Ledger.CreateIfFree(ctx, b); err != nil {
		if err == bookingRepo.ErrConflict {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	se.invalidateSlotCache(ctx, b.ProviderID, b.Date)
	if b.Status == models.StatusConfirmed {
		se.afterConfirm(ctx, b)
	}
	return b, nil
}

// Confirm moves a pending booking to confirmed.
func (se *DefaultBookingEngine) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.transition(ctx, bookingID, EventConfirm, nil, func(b *models.Booking) {
		se.afterConfirm(ctx, b)
	})
}

// Cancel releases a pending or confirmed booking's interval.
func (se *DefaultBookingEngine) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.transition(ctx, bookingID, EventCancel, nil, func(b *models.Booking) {
		se.notify(ctx, b)
	})
}

// Complete marks a confirmed booking completed once its appointment time has
// elapsed.
func (se *DefaultBookingEngine) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.transition(ctx, bookingID, EventComplete, se.guardElapsed, nil)
}

// MarkNoShow marks a confirmed booking as a no-show once its appointment time
// has elapsed.
func (se *DefaultBookingEngine) MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.transition(ctx, bookingID, EventNoShow, se.guardElapsed, nil)
}

// guardElapsed rejects completion/no-show before the appointment start has
// passed.
func (se *DefaultBookingEngine) guardElapsed(b *models.Booking, event Event) error {
	day, err := time.ParseInLocation("2006-01-02", b.Date, se.Location)
	if err != nil {
		return validationErrorf("booking %s has invalid date %q", b.ID, b.Date)
	}
	startAt := day.Add(time.Duration(b.Start) * time.Minute)
	if se.now().Before(startAt) {
		return &InvalidTransitionError{Status: b.Status, Event: event, Reason: "appointment time has not elapsed"}
	}
	return nil
}

// RequestReschedule puts a pending or confirmed booking into
// reschedule_requested, recording the proposal and the prior status. The
// original interval stays occupied until the request is approved or declined.
func (se *DefaultBookingEngine) RequestReschedule(ctx context.Context, bookingID string, proposal RescheduleProposal) (*models.Booking, error) {
	if _, err := time.ParseInLocation("2006-01-02", proposal.Date, se.Location); err != nil {
		return nil, validationErrorf("invalid proposed date %q: want YYYY-MM-DD", proposal.Date)
	}
	if proposal.Start < 0 || proposal.Start >= 24*60 {
		return nil, validationErrorf("proposed start %d is out of day bounds", proposal.Start)
	}
	if proposal.RequestedBy != "client" && proposal.RequestedBy != "stylist" {
		return nil, validationErrorf("requested_by must be %q or %q", "client", "stylist")
	}

	b, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(b.Status, EventRescheduleRequest); err != nil {
		return nil, err
	}

	target := *b
	target.Reschedule = &models.RescheduleRequest{
		ProposedDate:  proposal.Date,
		ProposedStart: proposal.Start,
		Reason:        proposal.Reason,
		RequestedBy:   proposal.RequestedBy,
		PriorStatus:   b.Status,
		RequestedAt:   se.now(),
	}
	target.Status = models.StatusRescheduleRequested
	target.UpdatedAt = se.now()

	if err := se.commit(ctx, &target, b.Status, EventRescheduleRequest); err != nil {
		return nil, err
	}
	return &target, nil
}

// ApproveReschedule moves the booking to its proposed date/time. The proposed
// slot must independently pass the conflict check, ignoring the booking's own
// original interval; the old interval is released atomically with the new one
// being claimed. On ErrSlotUnavailable the booking stays in
// reschedule_requested with its proposal intact.
func (se *DefaultBookingEngine) ApproveReschedule(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(b.Status, EventRescheduleApprove); err != nil {
		return nil, err
	}
	if b.Reschedule == nil {
		return nil, validationErrorf("booking %s has no reschedule proposal", b.ID)
	}

	proposal := b.Reschedule
	duration := b.Duration()
	if err := se.checkSlotOpen(ctx, b.ProviderID, proposal.ProposedDate, proposal.ProposedStart, duration); err != nil {
		return nil, err
	}

	release, err := se.lockDay(ctx, b.ProviderID, proposal.ProposedDate)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := se.Ledger.GetNonTerminalBookings(ctx, b.ProviderID, proposal.ProposedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking ledger: %w", err)
	}
	newStart := proposal.ProposedStart
	if hasConflictExcluding(newStart, newStart+duration, existing, b.ID) {
		return nil, ErrSlotUnavailable
	}

	oldDate := b.Date
	target := *b
	target.Date = proposal.ProposedDate
	target.Start = newStart
	target.End = newStart + duration
	target.Status = models.StatusConfirmed
	target.Reschedule = nil
	target.UpdatedAt = se.now()

	if err := se.Ledger.CommitTransitionIfFree(ctx, &target, models.StatusRescheduleRequested); err != nil {
		switch err {
		case bookingRepo.ErrConflict:
			return nil, ErrSlotUnavailable
		case bookingRepo.ErrStaleStatus:
			return nil, se.staleTransition(ctx, bookingID, EventRescheduleApprove)
		}
		return nil, fmt.Errorf("failed to commit reschedule: %w", err)
	}

	se.invalidateSlotCache(ctx, target.ProviderID, oldDate)
	se.afterConfirm(ctx, &target)
	return &target, nil
}

// DeclineReschedule discards the proposal and reverts the booking to its
// pre-request status and original date/time.
func (se *DefaultBookingEngine) DeclineReschedule(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := nextStatus(b.Status, EventRescheduleDecline); err != nil {
		return nil, err
	}
	if b.Reschedule == nil {
		return nil, validationErrorf("booking %s has no reschedule proposal", b.ID)
	}

	target := *b
	target.Status = b.Reschedule.PriorStatus
	target.Reschedule = nil
	target.UpdatedAt = se.now()

	if err := se.commit(ctx, &target, models.StatusRescheduleRequested, EventRescheduleDecline); err != nil {
		return nil, err
	}
	se.notify(ctx, &target)
	return &target, nil
}

// transition loads the booking, resolves the table, and commits the guarded
// status change. guard (optional) runs after table resolution; after
// (optional) runs post-commit.
func (se *DefaultBookingEngine) transition(
	ctx context.Context,
	bookingID string,
	event Event,
	guard func(*models.Booking, Event) error,
	after func(*models.Booking),
) (*models.Booking, error) {
	b, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	to, err := nextStatus(b.Status, event)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(b, event); err != nil {
			return nil, err
		}
	}

	target := *b
	target.Status = to
	target.UpdatedAt = se.now()

	if err := se.commit(ctx, &target, b.Status, event); err != nil {
		return nil, err
	}
	se.invalidateSlotCache(ctx, target.ProviderID, target.Date)
	if after != nil {
		after(&target)
	}
	return &target, nil
}

// commit applies a guarded transition, turning a lost status race into an
// InvalidTransitionError naming the status the booking actually holds now.
func (se *DefaultBookingEngine) commit(ctx context.Context, target *models.Booking, expected models.BookingStatus, event Event) error {
	err := se.Ledger.CommitTransition(ctx, target, expected)
	if err == nil {
		return nil
	}
	if err == bookingRepo.ErrStaleStatus {
		return se.staleTransition(ctx, target.ID, event)
	}
	if err == bookingRepo.ErrNotFound {
		return ErrBookingNotFound
	}
	return fmt.Errorf("failed to commit booking transition: %w", err)
}

func (se *DefaultBookingEngine) staleTransition(ctx context.Context, bookingID string, event Event) error {
	current, err := se.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	return &InvalidTransitionError{Status: current.Status, Event: event, Reason: "status changed concurrently"}
}

// afterConfirm runs the post-commit side effects of a confirmation:
// client notification and the appointment reminder.
func (se *DefaultBookingEngine) afterConfirm(ctx context.Context, b *models.Booking) {
	se.notify(ctx, b)
	if se.Reminders == nil {
		return
	}
	if err := se.Reminders.ScheduleBookingReminder(b); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (se *DefaultBookingEngine) notify(ctx context.Context, b *models.Booking) {
	if se.Notifier == nil {
		return
	}
	if err := se.Notifier.NotifyBookingStatus(ctx, b); err != nil {
		utils.GetLogger().Warn("failed to send booking notification",
			zap.String("bookingID", b.ID), zap.String("status", string(b.Status)), zap.Error(err))
	}
}
