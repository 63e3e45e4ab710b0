// Package usecase defines business logic interfaces for account and token
// lifecycle operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, user *authDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)
}

// RefreshTokenRepository defines persistence operations for refresh tokens.
// Implementations must support transaction-aware operations via context propagation.
type RefreshTokenRepository interface {
	// Create stores a new refresh token.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByUserAndToken retrieves a token row scoped to its user. Returns
	// ErrTokenNotFound if no matching row exists.
	GetByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*authDomain.RefreshToken, error)

	// RevokeIfActive marks the token revoked only if it is currently active
	// and reports whether a row was revoked. Concurrent callers see exactly
	// one true result per token.
	RevokeIfActive(ctx context.Context, userID uuid.UUID, token string) (bool, error)

	// RevokeAllForUser revokes every active token of the user and returns
	// the number affected.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// AuthUseCase defines account and token lifecycle operations.
type AuthUseCase interface {
	// Register creates a new user account with a hashed password.
	// Returns ErrEmailTaken when the email is already registered.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*authDomain.User, error)

	// SignIn authenticates by email and password and issues an access and
	// refresh token pair. The refresh token is persisted before the pair is
	// returned; if persistence fails the sign-in fails.
	//
	// Returns ErrInvalidCredentials for unknown emails and wrong passwords
	// alike so responses never reveal which check failed.
	SignIn(ctx context.Context, input *authDomain.SignInInput) (*authDomain.User, *authDomain.TokenPair, error)

	// Refresh rotates a refresh token: the presented token is revoked and a
	// new pair is issued atomically. A token that is expired, revoked, or
	// loses a concurrent rotation race yields ErrInvalidCredentials.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// ValidateRefreshToken reports whether the token is currently usable by
	// the user. It never returns an error: infrastructure failures report
	// false. An expired but unrevoked row is revoked opportunistically.
	ValidateRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) bool

	// Revoke invalidates a single refresh token of the user. Idempotent: a
	// token that is already revoked or was never issued is a logged no-op.
	Revoke(ctx context.Context, userID uuid.UUID, refreshToken string) error

	// RevokeAll invalidates every active refresh token of the user and
	// returns the number revoked.
	RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error)

	// VerifyAccessToken checks an access token and returns its payload, or
	// nil when the token is invalid. It never returns an error; rejection
	// reasons are logged, not surfaced.
	VerifyAccessToken(ctx context.Context, accessToken string) *authDomain.TokenPayload
}
