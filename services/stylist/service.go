package stylist

import (
	"context"

	availabilityRepo "quikka/database/repository/availability"
	stylistRepo "quikka/database/repository/stylist"
	"quikka/models"
)

// StylistService manages stylist accounts, their service offerings, and the
// availability rules they publish.
type StylistService interface {
	Register(ctx context.Context, req models.StylistSignupRequest) (*models.StylistAuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.StylistAuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Stylist, error)
	List(ctx context.Context, offset, limit int64) ([]models.Stylist, error)
	UpdateServices(ctx context.Context, stylistID string, services []models.ServiceOffering) error
	SetWeeklyHours(ctx context.Context, stylistID string, weekly map[string]models.DayWindow) error
	SetDateOverride(ctx context.Context, stylistID, date string, ov *models.DateOverride) error
	GetAvailabilityRule(ctx context.Context, stylistID string) (*models.AvailabilityRule, error)
}

// DefaultStylistService implements StylistService.
type DefaultStylistService struct {
	Repo         stylistRepo.StylistRepository
	Availability availabilityRepo.AvailabilityRepository
}
