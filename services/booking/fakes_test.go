package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "quikka/database/repository/booking"
	"quikka/models"
)

// fakeLedger is an in-memory BookingRepository with the same guarded-commit
// contract as the Mongo implementation: one mutex plays the role of the
// transaction, so concurrent CreateIfFree calls for overlapping intervals
// resolve to exactly one winner.
type fakeLedger struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{bookings: make(map[string]models.Booking)}
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (f *fakeLedger) GetNonTerminalBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectLocked(providerID, date, true), nil
}

func (f *fakeLedger) ListByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectLocked(providerID, date, false), nil
}

func (f *fakeLedger) selectLocked(providerID, date string, occupyingOnly bool) []models.Booking {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID != providerID || b.Date != date {
			continue
		}
		if occupyingOnly && !b.Status.Occupies() {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func (f *fakeLedger) overlapsLocked(b *models.Booking, excludeID string) bool {
	for _, other := range f.bookings {
		if other.ID == excludeID || other.ProviderID != b.ProviderID || other.Date != b.Date {
			continue
		}
		if !other.Status.Occupies() {
			continue
		}
		if other.OverlapsInterval(b.Start, b.End) {
			return true
		}
	}
	return false
}

func (f *fakeLedger) CreateIfFree(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapsLocked(b, b.ID) {
		return bookingRepo.ErrConflict
	}
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeLedger) CommitTransition(ctx context.Context, target *models.Booking, expected models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bookings[target.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Status != expected {
		return bookingRepo.ErrStaleStatus
	}
	f.bookings[target.ID] = *target
	return nil
}

func (f *fakeLedger) CommitTransitionIfFree(ctx context.Context, target *models.Booking, expected models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bookings[target.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Status != expected {
		return bookingRepo.ErrStaleStatus
	}
	if f.overlapsLocked(target, target.ID) {
		return bookingRepo.ErrConflict
	}
	f.bookings[target.ID] = *target
	return nil
}

// fakeAvailability serves fixed rules; providers without a rule are unknown.
type fakeAvailability struct {
	rules map[string]*models.AvailabilityRule
}

func (f *fakeAvailability) GetRule(ctx context.Context, providerID string) (*models.AvailabilityRule, error) {
	return f.rules[providerID], nil
}

func (f *fakeAvailability) UpsertRule(ctx context.Context, rule *models.AvailabilityRule) error {
	f.rules[rule.ProviderID] = rule
	return nil
}

func (f *fakeAvailability) SetOverride(ctx context.Context, providerID, date string, ov *models.DateOverride) error {
	rule, ok := f.rules[providerID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if rule.Overrides == nil {
		rule.Overrides = make(map[string]models.DateOverride)
	}
	if ov == nil {
		delete(rule.Overrides, date)
		return nil
	}
	rule.Overrides[date] = *ov
	return nil
}

const (
	testProvider = "prov-1"
	// 2026-03-02 is a Monday.
	testDate = "2026-03-02"
)

// newTestEngine wires an engine against the fakes with a fixed clock well
// before the test date, a 10:00-12:00 Monday window, 30-minute granularity
// and 60-minute default appointments.
func newTestEngine() (*DefaultBookingEngine, *fakeLedger) {
	ledger := newFakeLedger()
	avail := &fakeAvailability{rules: map[string]*models.AvailabilityRule{
		testProvider: {
			ProviderID: testProvider,
			Weekly: map[string]models.DayWindow{
				"monday":  {Open: 600, Close: 720},
				"tuesday": {Open: 540, Close: 1020},
			},
			Overrides: map[string]models.DateOverride{
				// The Tuesday after the test date is closed outright.
				"2026-03-03": {Closed: true},
			},
		},
	}}
	engine := &DefaultBookingEngine{
		Availability: avail,
		Ledger:       ledger,
		Granularity:  30,
		MinLeadTime:  30,
		Location:     time.UTC,
		Clock: func() time.Time {
			return time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
		},
	}
	return engine, ledger
}

func mustCreate(engine *DefaultBookingEngine, start, duration int) (*models.Booking, error) {
	return engine.CreateBooking(context.Background(), CreateBookingRequest{
		ProviderID:  testProvider,
		ClientName:  "Wanjiku",
		ClientPhone: "+254700000001",
		Date:        testDate,
		Start:       start,
		Duration:    duration,
	})
}
