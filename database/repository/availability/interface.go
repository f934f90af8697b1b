package availabilityRepo

import (
	"context"

	"quikka/models"
)

// AvailabilityRepository is the read/write store for provider availability
// rules. GetRule returns (nil, nil) when the provider has no rule on record.
type AvailabilityRepository interface {
	GetRule(ctx context.Context, providerID string) (*models.AvailabilityRule, error)
	UpsertRule(ctx context.Context, rule *models.AvailabilityRule) error

	// SetOverride sets or replaces a date-specific override; a nil override
	// clears the entry for that date.
	SetOverride(ctx context.Context, providerID, date string, ov *models.DateOverride) error
}
