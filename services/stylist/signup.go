package stylist

import (
	"context"
	"fmt"
	"strings"
	"time"

	stylistRepo "quikka/database/repository/stylist"
	"quikka/models"
	"quikka/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// Register creates a stylist account with a hashed password and returns a
// fresh auth token.
func (s *DefaultStylistService) Register(ctx context.Context, req models.StylistSignupRequest) (*models.StylistAuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	services := req.Services
	for i := range services {
		if services[i].ID == "" {
			services[i].ID = uuid.New().String()
		}
		if services[i].DurationMinutes <= 0 {
			return nil, fmt.Errorf("service %q must have a positive duration", services[i].Name)
		}
	}

	st := &models.Stylist{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		Phone:           strings.TrimSpace(req.Phone),
		PasswordHash:    string(hash),
		BusinessName:    strings.TrimSpace(req.BusinessName),
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
		Services:        services,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.Create(ctx, st); err != nil {
		if err == stylistRepo.ErrDuplicateEmail {
			return nil, err
		}
		utils.GetLogger().Error("failed to create stylist", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(ctx, st)
}

func (s *DefaultStylistService) issueToken(ctx context.Context, st *models.Stylist) (*models.StylistAuthResponse, error) {
	token, err := utils.GenerateToken(st.ID, st.Email, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, st.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	st.TokenHash = utils.HashToken(token)
	return &models.StylistAuthResponse{Token: token, Stylist: st}, nil
}
