package stylistRepo

import (
	"context"
	"errors"

	"quikka/models"
)

// ErrDuplicateEmail is returned when an account with the email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// StylistRepository is the account store for stylist profiles.
// Lookups return (nil, nil) when no stylist matches.
type StylistRepository interface {
	Create(ctx context.Context, s *models.Stylist) error
	GetByID(ctx context.Context, id string) (*models.Stylist, error)
	GetByEmail(ctx context.Context, email string) (*models.Stylist, error)
	List(ctx context.Context, offset, limit int64) ([]models.Stylist, error)
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
	UpdateServices(ctx context.Context, id string, services []models.ServiceOffering) error
}
