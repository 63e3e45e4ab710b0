// Package domain defines the health program entity.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Program is a health program clients can enroll in. Program metadata is not
// sensitive and is stored in the clear.
type Program struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProgramInput carries the fields for creating a program.
type CreateProgramInput struct {
	Name        string
	Description string
}

// UpdateProgramInput carries the fields for a full program update.
type UpdateProgramInput struct {
	Name        string
	Description string
}
