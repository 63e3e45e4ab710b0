package dto

import (
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
)

// ClientResponse is the decrypted representation of a client. A field that
// could not be decrypted carries the placeholder value.
type ClientResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        *string   `json:"gender"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	Address       *string   `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewClientResponse maps a domain client to its response representation.
func NewClientResponse(client *clientsDomain.Client) ClientResponse {
	return ClientResponse{
		ID:            client.ID,
		FirstName:     client.FirstName,
		LastName:      client.LastName,
		DateOfBirth:   client.DateOfBirth,
		Gender:        client.Gender,
		ContactNumber: client.ContactNumber,
		Email:         client.Email,
		Address:       client.Address,
		CreatedAt:     client.CreatedAt,
		UpdatedAt:     client.UpdatedAt,
	}
}

// ClientListResponse wraps a page of clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// NewClientListResponse maps a slice of domain clients to a list response.
func NewClientListResponse(clients []*clientsDomain.Client, offset, limit int) ClientListResponse {
	items := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, NewClientResponse(client))
	}
	return ClientListResponse{
		Clients: items,
		Offset:  offset,
		Limit:   limit,
	}
}
