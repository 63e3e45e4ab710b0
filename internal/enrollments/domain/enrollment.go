// Package domain defines the enrollment entity linking clients to programs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an enrollment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusWithdrawn Status = "withdrawn"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusWithdrawn:
		return true
	}
	return false
}

// Enrollment is the decrypted view of an enrollment. Notes is the only
// sensitive field; everything else is stored in the clear.
type Enrollment struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProgramID      uuid.UUID
	EnrollmentDate string
	Status         Status
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EnrollmentRecord is the stored form of an enrollment. Notes holds an
// encrypted opaque value, nil when never provided.
type EnrollmentRecord struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ProgramID      uuid.UUID
	EnrollmentDate string
	Status         Status
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EnrollmentDetailRecord joins an enrollment with the encrypted client name
// fields and the program name for list-with-details views.
type EnrollmentDetailRecord struct {
	EnrollmentRecord
	ClientFirstName *string
	ClientLastName  *string
	ProgramName     string
}

// EnrollmentWithDetails is the decrypted view of a detail row.
type EnrollmentWithDetails struct {
	Enrollment
	ClientFirstName string
	ClientLastName  string
	ProgramName     string
}

// CreateEnrollmentInput carries the fields for enrolling a client in a
// program. Notes is optional plaintext; empty means absent.
type CreateEnrollmentInput struct {
	ClientID       uuid.UUID
	ProgramID      uuid.UUID
	EnrollmentDate string
	Status         Status
	Notes          string
}

// UpdateEnrollmentInput carries the mutable enrollment fields. The client and
// program of an existing enrollment never change; a different pairing is a
// new enrollment.
type UpdateEnrollmentInput struct {
	EnrollmentDate string
	Status         Status
	Notes          string
}
