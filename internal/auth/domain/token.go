package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPayload is the verified content of an access or refresh token.
type TokenPayload struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of a successful sign-in or refresh: a short-lived
// access token and a long-lived refresh token, issued together.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
