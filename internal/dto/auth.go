package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// RegisterRequest defines the payload for local account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the payload for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries a Google OAuth authorization code from the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PrivacyMode bool      `json:"privacyMode"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		PrivacyMode: u.PrivacyMode,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdateUserRequest defines the fields a user can change on their profile.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	PrivacyMode *bool   `json:"privacyMode"`
}

// AuthResponse carries a fresh access token and the authenticated user.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
