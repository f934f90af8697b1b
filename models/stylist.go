package models

import "time"

// ServiceOffering is one service a stylist offers, with its duration and price.
type ServiceOffering struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
}

// Stylist is a service provider account with a public business profile.
type Stylist struct {
	ID              string            `bson:"id" json:"id"`
	Name            string            `bson:"name" json:"name"`
	Email           string            `bson:"email" json:"email"`
	Phone           string            `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash    string            `bson:"password_hash" json:"-"`
	BusinessName    string            `bson:"business_name" json:"business_name"`
	Bio             string            `bson:"bio" json:"bio"`
	ProfileImageURL string            `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	Services        []ServiceOffering `bson:"services,omitempty" json:"services,omitempty"`
	TokenHash       string            `bson:"token_hash,omitempty" json:"-"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
}

// ServiceByID returns the offering with the given ID, if any.
func (s *Stylist) ServiceByID(id string) (ServiceOffering, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return ServiceOffering{}, false
}

// StylistSignupRequest is the payload for creating a stylist account.
type StylistSignupRequest struct {
	Name            string            `json:"name" binding:"required"`
	Email           string            `json:"email" binding:"required,email"`
	Phone           string            `json:"phone"`
	Password        string            `json:"password" binding:"required,min=8"`
	BusinessName    string            `json:"business_name" binding:"required"`
	Bio             string            `json:"bio" binding:"required"`
	ProfileImageURL string            `json:"profile_image_url"`
	Services        []ServiceOffering `json:"services"`
}

// StylistAuthResponse is returned on successful login.
type StylistAuthResponse struct {
	Token   string   `json:"token"`
	Stylist *Stylist `json:"stylist"`
}
