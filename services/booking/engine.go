package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	availabilityRepo "quikka/database/repository/availability"
	bookingRepo "quikka/database/repository/booking"
	"quikka/models"
	"quikka/services/notification"
	"quikka/services/tasks"
	"quikka/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultBookingEngine computes bookable slots and drives the booking
// lifecycle. Slot generation and conflict filtering are pure functions over a
// snapshot of the rule and ledger; every state-changing operation re-checks
// conflicts at commit time through the ledger's transactional contract, so a
// stale read on the query path can never corrupt the schedule.
type DefaultBookingEngine struct {
	Availability availabilityRepo.AvailabilityRepository
	Ledger       bookingRepo.BookingRepository
	LockClient   *redis.Client                    // provider-day locks; nil disables locking
	Cache        *redis.Client                    // short-TTL slot query cache; nil disables caching
	Notifier     notification.NotificationService // nil disables notifications
	Reminders    *tasks.ReminderScheduler         // nil disables reminders

	Granularity int // minutes between candidate starts
	MinLeadTime int // minimum minutes between now and a same-day start
	AutoConfirm bool
	Location    *time.Location
	Clock       func() time.Time // nil means time.Now
}

const (
	slotCacheTTL = 15 * time.Second
	dayLockTTL   = 10 * time.Second
)

func (se *DefaultBookingEngine) now() time.Time {
	if se.Clock != nil {
		return se.Clock().In(se.Location)
	}
	return time.Now().In(se.Location)
}

// earliestStart returns the lower bound on candidate starts for the date:
// zero for future dates, now plus lead time for today, and past the end of
// day for dates already gone.
func (se *DefaultBookingEngine) earliestStart(date string, now time.Time) int {
	today := now.Format("2006-01-02")
	switch {
	case date > today:
		return 0
	case date < today:
		return 24 * 60
	default:
		return now.Hour()*60 + now.Minute() + se.MinLeadTime
	}
}

// resolveRule fetches the provider's availability rule, mapping a missing
// rule to ErrProviderNotFound.
func (se *DefaultBookingEngine) resolveRule(ctx context.Context, providerID string) (*models.AvailabilityRule, error) {
	rule, err := se.Availability.GetRule(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability rule: %w", err)
	}
	if rule == nil {
		return nil, ErrProviderNotFound
	}
	return rule, nil
}

// ListAvailableSlots returns the ordered bookable start times for a provider,
// date and duration. A closed day yields an empty list. Results may be served
// from a short-lived cache; the commit-time re-check protects correctness,
// not this read path.
func (se *DefaultBookingEngine) ListAvailableSlots(ctx context.Context, providerID, date string, durationMinutes int) ([]models.AvailableSlot, error) {
	if providerID == "" {
		return nil, validationErrorf("provider id is required")
	}
	if durationMinutes <= 0 {
		return nil, validationErrorf("duration must be positive, got %d", durationMinutes)
	}
	if _, err := time.ParseInLocation("2006-01-02", date, se.Location); err != nil {
		return nil, validationErrorf("invalid date %q: want YYYY-MM-DD", date)
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%d", providerID, date, durationMinutes)
	if cached, ok := se.cachedSlots(ctx, cacheKey); ok {
		return cached, nil
	}

	rule, err := se.resolveRule(ctx, providerID)
	if err != nil {
		return nil, err
	}
	win, open, err := rule.WindowFor(date, se.Location)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}

	slots := []models.AvailableSlot{}
	if open {
		earliest := se.earliestStart(date, se.now())
		candidates := CandidateStarts(win, durationMinutes, se.Granularity, earliest)
		if len(candidates) > 0 {
			existing, err := se.Ledger.GetNonTerminalBookings(ctx, providerID, date)
			if err != nil {
				return nil, fmt.Errorf("failed to read booking ledger: %w", err)
			}
			for _, start := range FilterConflicts(candidates, durationMinutes, existing) {
				slots = append(slots, models.AvailableSlot{
					Start: start,
					End:   start + durationMinutes,
					Label: fmt.Sprintf("%s - %s", utils.FormatTime(start), utils.FormatTime(start+durationMinutes)),
				})
			}
		}
	}

	se.storeSlots(ctx, cacheKey, slots)
	return slots, nil
}

func (se *DefaultBookingEngine) cachedSlots(ctx context.Context, key string) ([]models.AvailableSlot, bool) {
	if se.Cache == nil {
		return nil, false
	}
	raw, err := se.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.AvailableSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (se *DefaultBookingEngine) storeSlots(ctx context.Context, key string, slots []models.AvailableSlot) {
	if se.Cache == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := se.Cache.Set(ctx, key, raw, slotCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("slot cache write failed", zap.Error(err))
	}
}

// invalidateSlotCache drops cached slot queries for a provider-date after a
// successful write. Best effort; entries expire within seconds anyway.
func (se *DefaultBookingEngine) invalidateSlotCache(ctx context.Context, providerID, date string) {
	if se.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:%s:*", providerID, date)
	keys, err := se.Cache.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := se.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}

// lockDay serializes commits for one provider-day. Returns a release func;
// when locking is disabled both returns are no-ops.
func (se *DefaultBookingEngine) lockDay(ctx context.Context, providerID, date string) (func(), error) {
	if se.LockClient == nil {
		return func() {}, nil
	}
	lock, err := utils.AcquireDayLock(ctx, se.LockClient, providerID, date, dayLockTTL)
	if err != nil {
		if err == utils.ErrDayLockHeld {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to acquire day lock: %w", err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil {
			utils.GetLogger().Warn("failed to release day lock",
				zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		}
	}, nil
}

// GetBooking fetches one booking by ID.
func (se *DefaultBookingEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := se.Ledger.GetByID(ctx, id)
	if err == bookingRepo.ErrNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return b, nil
}

// ListBookings returns the provider's full ledger for one date.
func (se *DefaultBookingEngine) ListBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, se.Location); err != nil {
		return nil, validationErrorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return se.Ledger.ListByProviderDate(ctx, providerID, date)
}
