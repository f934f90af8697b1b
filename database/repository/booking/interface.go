package bookingRepo

import (
	"context"
	"errors"

	"quikka/models"
)

var (
	// ErrNotFound is returned when no booking matches the given ID.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned when the target interval overlaps a
	// non-terminal booking at commit time.
	ErrConflict = errors.New("booking interval conflicts with an existing booking")
	// ErrStaleStatus is returned when the booking's stored status no longer
	// matches the expected prior status of a transition.
	ErrStaleStatus = errors.New("booking status changed since it was read")
)

// BookingRepository is the ledger collaborator: it owns durable, atomic
// commits of bookings. Every write takes the full target state plus the
// expected prior state so it can be applied as a guarded, all-or-nothing
// operation.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// GetNonTerminalBookings returns the provider's bookings on a date whose
	// status still occupies its interval, ordered by start time.
	GetNonTerminalBookings(ctx context.Context, providerID, date string) ([]models.Booking, error)

	// ListByProviderDate returns all bookings for the provider on a date,
	// terminal ones included, ordered by start time.
	ListByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error)

	// CreateIfFree inserts the booking inside a transaction that re-counts
	// overlapping non-terminal bookings for (provider, date); it aborts with
	// ErrConflict if any exist.
	CreateIfFree(ctx context.Context, b *models.Booking) error

	// CommitTransition applies the target state to the stored booking,
	// guarded on the expected prior status. Returns ErrStaleStatus when the
	// guard does not match.
	CommitTransition(ctx context.Context, target *models.Booking, expected models.BookingStatus) error

	// CommitTransitionIfFree is CommitTransition plus an in-transaction
	// overlap re-count on the target's (provider, date, interval), excluding
	// the booking itself. Used by reschedule approval, where the old interval
	// must be released atomically with the new one being claimed.
	CommitTransitionIfFree(ctx context.Context, target *models.Booking, expected models.BookingStatus) error
}
