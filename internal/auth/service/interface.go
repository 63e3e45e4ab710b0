// Package service implements password hashing and token signing and
// verification for authentication.
package service

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
)

// PasswordService defines password hashing and verification operations.
type PasswordService interface {
	// Hash generates a hash of the given password for storage.
	Hash(password string) (string, error)

	// Compare checks whether the plain password matches the stored hash.
	// Comparison failures and malformed hashes both report false.
	Compare(password, hash string) bool
}

// TokenSigner issues signed tokens carrying a user identity.
type TokenSigner interface {
	// Sign creates a token for the user that expires after the given
	// lifetime. The returned expiry is the instant embedded in the token so
	// persisted records and the token itself always agree.
	Sign(userID uuid.UUID, lifetime time.Duration) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks a token signature and expiry and extracts its payload.
//
// Two interchangeable implementations exist: one built on the JWT library and
// one on primitive HMAC operations for deployments where the full library is
// unavailable. Both must accept exactly the tokens TokenSigner produces and
// reject everything else, and both report every failure as
// ErrInvalidCredentials.
type TokenVerifier interface {
	Verify(token string) (*authDomain.TokenPayload, error)
}
