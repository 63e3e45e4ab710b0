package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
)

// jwtVerifier implements TokenVerifier using the JWT library parser.
type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier creates the library-backed TokenVerifier.
func NewJWTVerifier(secret []byte) TokenVerifier {
	return &jwtVerifier{secret: secret}
}

// Verify parses and validates the token. Only HS256 is accepted; a token
// signed with any other algorithm fails regardless of its signature. All
// failures collapse into ErrInvalidCredentials.
func (j *jwtVerifier) Verify(token string) (*authDomain.TokenPayload, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	payload := &authDomain.TokenPayload{
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}

	return payload, nil
}
