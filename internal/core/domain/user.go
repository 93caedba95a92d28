package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID                 string       `json:"userID"` // Primary Key (e.g., UUID)
	Name                   string       `json:"name"`
	Email                  string       `json:"email"`
	PasswordHash           string       `json:"-"` // Empty for OAuth-only users
	AuthProvider           AuthProvider `json:"authProvider"`
	ProviderUserID         string       `json:"-"` // Subject ID at the external provider
	RefreshTokenHash       string       `json:"-"`
	RefreshTokenExpiryTime *time.Time   `json:"-"`
	PrivacyMode            bool         `json:"privacyMode"` // Mask amounts in responses
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the subset of the Google userinfo payload we consume.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
