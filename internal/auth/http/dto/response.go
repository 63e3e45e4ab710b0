package dto

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
)

// UserResponse is the public representation of a user account. The password
// hash never appears in any response.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user to its response representation.
func NewUserResponse(user *authDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// SignInResponse carries the authenticated user and their token pair.
type SignInResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// TokenPairResponse carries a rotated token pair.
type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RevokeResponse reports how many sessions a revoke operation ended.
type RevokeResponse struct {
	Revoked int64 `json:"revoked"`
}
