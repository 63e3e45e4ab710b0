package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// tokenClaims is the JWT claim set for both access and refresh tokens.
// The registered iat and exp claims are set on every token; user_id carries
// the subject as a UUID string.
type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// jwtTokenSigner implements TokenSigner using HMAC-SHA256 signed JWTs.
type jwtTokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a TokenSigner that signs with the given shared secret.
func NewTokenSigner(secret []byte) TokenSigner {
	return &jwtTokenSigner{secret: secret}
}

// Sign creates an HS256 JWT for the user. The expiry embedded in the token is
// returned to the caller so a persisted token record never disagrees with the
// exp claim by a clock re-read.
func (j *jwtTokenSigner) Sign(userID uuid.UUID, lifetime time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(lifetime)

	claims := tokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}
