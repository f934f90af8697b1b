package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrDayLockHeld is returned when another request holds the provider-day lock.
var ErrDayLockHeld = fmt.Errorf("provider day lock already held")

// DayLock is a short-lived Redis advisory lock scoped to one provider and one
// calendar date. It serializes booking commits for that day; the transactional
// re-check in the ledger remains the correctness guarantee if the lock expires.
type DayLock struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

func dayLockKey(providerID, date string) string {
	return fmt.Sprintf("daylock:%s:%s", providerID, date)
}

// AcquireDayLock attempts to take the lock for (providerID, date). It retries
// briefly before giving up with ErrDayLockHeld.
func AcquireDayLock(ctx context.Context, client *redis.Client, providerID, date string, ttl time.Duration) (*DayLock, error) {
	lock := &DayLock{
		client: client,
		key:    dayLockKey(providerID, date),
		token:  uuid.New().String(),
		ttl:    ttl,
	}
	const attempts = 10
	for i := 0; i < attempts; i++ {
		ok, err := client.SetNX(ctx, lock.key, lock.token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("day lock acquire failed: %w", err)
		}
		if ok {
			return lock, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil, ErrDayLockHeld
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Release frees the lock if this holder still owns it.
func (l *DayLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}
