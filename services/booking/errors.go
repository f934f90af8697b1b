package booking

import (
	"fmt"

	"quikka/models"
)

// EngineError is a named failure condition from the booking engine.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrSlotUnavailable means a well-formed request lost a race or targeted
	// an occupied interval. The caller must re-query slots; never retry
	// silently with a different slot.
	ErrSlotUnavailable = &EngineError{
		Code:    "slotUnavailable",
		Message: "the requested time is no longer available, please pick another time",
	}

	// ErrProviderNotFound means the provider has no availability rule on record.
	ErrProviderNotFound = &EngineError{
		Code:    "providerNotFound",
		Message: "no availability found for the selected provider",
	}

	// ErrBookingNotFound means no booking matches the given ID.
	ErrBookingNotFound = &EngineError{
		Code:    "bookingNotFound",
		Message: "booking not found",
	}
)

// ValidationError reports malformed input, rejected before any slot
// computation. Never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError reports a lifecycle operation attempted from a state
// that does not allow it. Always a caller error; never retried.
type InvalidTransitionError struct {
	Status models.BookingStatus
	Event  Event
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("cannot apply %q to a booking in status %q", e.Event, e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
