package stylist

import (
	"context"
	"fmt"
	"time"

	"quikka/models"
	"quikka/utils"

	"go.uber.org/zap"
)

var weekdayKeys = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// SetWeeklyHours replaces the stylist's recurring weekly windows. Days absent
// from the map are treated as closed. Existing date overrides are preserved.
func (s *DefaultStylistService) SetWeeklyHours(ctx context.Context, stylistID string, weekly map[string]models.DayWindow) error {
	logger := utils.GetLogger().With(zap.String("stylist_id", stylistID))

	if stylistID == "" {
		return fmt.Errorf("stylist id is required")
	}
	for day := range weekly {
		if !weekdayKeys[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
	}

	if _, err := s.GetByID(ctx, stylistID); err != nil {
		return err
	}

	rule, err := s.Availability.GetRule(ctx, stylistID)
	if err != nil {
		logger.Error("Failed to fetch availability rule", zap.Error(err))
		return fmt.Errorf("failed to fetch availability: %w", err)
	}
	if rule == nil {
		rule = &models.AvailabilityRule{ProviderID: stylistID}
	}
	rule.Weekly = weekly
	rule.UpdatedAt = time.Now()

	if err := rule.Validate(); err != nil {
		return err
	}
	if err := s.Availability.UpsertRule(ctx, rule); err != nil {
		logger.Error("Failed to save availability rule", zap.Error(err))
		return fmt.Errorf("failed to save availability: %w", err)
	}
	logger.Info("Weekly hours updated", zap.Int("days_open", len(weekly)))
	return nil
}

// SetDateOverride sets, replaces, or clears a date-specific override. A nil
// override removes the entry so the weekday default applies again.
func (s *DefaultStylistService) SetDateOverride(ctx context.Context, stylistID, date string, ov *models.DateOverride) error {
	logger := utils.GetLogger().With(zap.String("stylist_id", stylistID), zap.String("date", date))

	if stylistID == "" {
		return fmt.Errorf("stylist id is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	if ov != nil && !ov.Closed {
		if ov.Window == nil {
			return fmt.Errorf("override must be closed or carry a window")
		}
		probe := models.AvailabilityRule{Overrides: map[string]models.DateOverride{date: *ov}}
		if err := probe.Validate(); err != nil {
			return err
		}
	}

	if _, err := s.GetByID(ctx, stylistID); err != nil {
		return err
	}

	rule, err := s.Availability.GetRule(ctx, stylistID)
	if err != nil {
		logger.Error("Failed to fetch availability rule", zap.Error(err))
		return fmt.Errorf("failed to fetch availability: %w", err)
	}
	if rule == nil {
		// No rule document yet; create one so the override has a home.
		rule = &models.AvailabilityRule{ProviderID: stylistID, UpdatedAt: time.Now()}
		if ov != nil {
			rule.Overrides = map[string]models.DateOverride{date: *ov}
		}
		if err := s.Availability.UpsertRule(ctx, rule); err != nil {
			logger.Error("Failed to save availability rule", zap.Error(err))
			return fmt.Errorf("failed to save availability: %w", err)
		}
		return nil
	}

	if err := s.Availability.SetOverride(ctx, stylistID, date, ov); err != nil {
		logger.Error("Failed to set date override", zap.Error(err))
		return fmt.Errorf("failed to save override: %w", err)
	}
	logger.Info("Date override updated", zap.Bool("cleared", ov == nil))
	return nil
}

// GetAvailabilityRule returns the stylist's availability rule, or an empty
// rule when none has been published yet.
func (s *DefaultStylistService) GetAvailabilityRule(ctx context.Context, stylistID string) (*models.AvailabilityRule, error) {
	if _, err := s.GetByID(ctx, stylistID); err != nil {
		return nil, err
	}
	rule, err := s.Availability.GetRule(ctx, stylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if rule == nil {
		rule = &models.AvailabilityRule{ProviderID: stylistID}
	}
	return rule, nil
}
