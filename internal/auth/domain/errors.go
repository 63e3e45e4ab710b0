package domain

import (
	"github.com/healthdesk/healthinfo/internal/errors"
)

// Authentication error definitions.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrEmailTaken indicates a registration attempt with an email that is
	// already associated with an account.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email is already registered")

	// ErrInvalidCredentials indicates a failed sign-in, an invalid or expired
	// token, or a revoked refresh token. The same error covers all of these
	// so responses never reveal which check failed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials or token")

	// ErrTokenNotFound indicates the refresh token has no matching row for
	// the presenting user.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "refresh token not found")
)
