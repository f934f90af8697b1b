package stylist

import (
	"context"
	"fmt"
	"strings"

	"quikka/models"
	"quikka/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials and returns a fresh auth token. Lookup
// and password failures collapse into one message so the endpoint does not
// leak which emails have accounts.
func (s *DefaultStylistService) Authenticate(ctx context.Context, email, password string) (*models.StylistAuthResponse, error) {
	st, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("failed to fetch stylist", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if st == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(ctx, st)
}

// GetByID returns the stylist profile.
func (s *DefaultStylistService) GetByID(ctx context.Context, id string) (*models.Stylist, error) {
	st, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("failed to fetch stylist", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch stylist")
	}
	if st == nil {
		return nil, fmt.Errorf("stylist not found")
	}
	return st, nil
}

// List returns a page of stylist profiles.
func (s *DefaultStylistService) List(ctx context.Context, offset, limit int64) ([]models.Stylist, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.Repo.List(ctx, offset, limit)
}

// UpdateServices replaces the stylist's service offerings.
func (s *DefaultStylistService) UpdateServices(ctx context.Context, stylistID string, services []models.ServiceOffering) error {
	for i := range services {
		if services[i].ID == "" {
			services[i].ID = uuid.New().String()
		}
		if services[i].DurationMinutes <= 0 {
			return fmt.Errorf("service %q must have a positive duration", services[i].Name)
		}
	}
	return s.Repo.UpdateServices(ctx, stylistID, services)
}
