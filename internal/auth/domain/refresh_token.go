package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted long-lived credential. The token column stores
// the signed JWT string; a row with a non-nil RevokedAt is dead and can never
// be used again, even if the JWT itself is still within its validity window.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the token is usable at the given instant.
func (r *RefreshToken) IsActive(now time.Time) bool {
	return r.RevokedAt == nil && r.ExpiresAt.After(now)
}
