package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated operator of the system. The password is stored
// only as a bcrypt hash.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterInput carries the fields required to create a new user account.
type RegisterInput struct {
	Email    string
	Password string
}

// SignInInput carries the credentials for an email and password sign-in.
type SignInInput struct {
	Email    string
	Password string
}
