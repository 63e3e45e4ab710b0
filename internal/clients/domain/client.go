// Package domain defines the client entity and its stored representation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is the decrypted view of a client served to API callers. A field
// that failed to decrypt carries the placeholder value instead of plaintext.
type Client struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	DateOfBirth   string
	Gender        *string
	ContactNumber string
	Email         string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientRecord is the stored form of a client: every sensitive field is an
// encrypted opaque string, nil when the optional field was never provided.
// Required fields are always non-nil in a well-formed record.
type ClientRecord struct {
	ID            uuid.UUID
	FirstName     *string
	LastName      *string
	DateOfBirth   *string
	Gender        *string
	ContactNumber *string
	Email         *string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateClientInput carries the plaintext fields for creating a client.
// Gender and Address are optional; empty means absent.
type CreateClientInput struct {
	FirstName     string
	LastName      string
	DateOfBirth   string
	Gender        string
	ContactNumber string
	Email         string
	Address       string
}

// UpdateClientInput carries the plaintext fields for a full update. The same
// optionality rules as CreateClientInput apply.
type UpdateClientInput struct {
	FirstName     string
	LastName      string
	DateOfBirth   string
	Gender        string
	ContactNumber string
	Email         string
	Address       string
}
