// Package usecase implements client business logic: field-level encryption on
// writes, per-field decryption with placeholder fallback on reads.
package usecase

import (
	"context"

	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
)

// ClientRepository persists encrypted client records. Implementations never
// see plaintext; every sensitive column holds an opaque encoded value.
type ClientRepository interface {
	Create(ctx context.Context, record *clientsDomain.ClientRecord) error
	Update(ctx context.Context, record *clientsDomain.ClientRecord) error
	Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.ClientRecord, error)
	List(ctx context.Context, offset, limit int) ([]*clientsDomain.ClientRecord, error)
	Delete(ctx context.Context, clientID uuid.UUID) error
}

// ClientUseCase defines client operations over decrypted views.
type ClientUseCase interface {
	// Create encrypts the input fields and stores a new client. Any
	// encryption failure on a provided field aborts the write.
	Create(ctx context.Context, input *clientsDomain.CreateClientInput) (*clientsDomain.Client, error)

	// Get fetches and decrypts a single client. A field that fails to
	// decrypt carries a placeholder; the fetch itself never fails for that.
	Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error)

	// List fetches and decrypts a page of clients, newest first.
	List(ctx context.Context, offset, limit int) ([]*clientsDomain.Client, error)

	// Search is intentionally unsupported over encrypted columns. A
	// non-empty query logs a warning and returns an empty list.
	Search(ctx context.Context, query string) ([]*clientsDomain.Client, error)

	// Update encrypts the input fields and replaces the stored record.
	Update(ctx context.Context, clientID uuid.UUID, input *clientsDomain.UpdateClientInput) (*clientsDomain.Client, error)

	// Delete removes a client; its enrollments cascade.
	Delete(ctx context.Context, clientID uuid.UUID) error
}
