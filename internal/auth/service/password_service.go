package service

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// bcryptCost is fixed so every stored hash carries the same work factor.
const bcryptCost = 10

// bcryptPasswordService implements PasswordService using bcrypt.
type bcryptPasswordService struct{}

// NewPasswordService creates a bcrypt-backed PasswordService.
func NewPasswordService() PasswordService {
	return &bcryptPasswordService{}
}

// Hash generates a bcrypt hash of the password. The salt is generated by
// bcrypt itself and encoded into the returned hash string.
func (b *bcryptPasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// Compare checks the plain password against the stored bcrypt hash using
// bcrypt's constant-time comparison.
func (b *bcryptPasswordService) Compare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
