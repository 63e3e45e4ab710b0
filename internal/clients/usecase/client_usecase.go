package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
	cryptoDomain "github.com/healthdesk/healthinfo/internal/crypto/domain"
	cryptoService "github.com/healthdesk/healthinfo/internal/crypto/service"
)

// clientUseCase implements ClientUseCase.
type clientUseCase struct {
	repo  ClientRepository
	codec cryptoService.FieldCodec
}

// Create encrypts the input and stores a new client record.
func (c *clientUseCase) Create(
	ctx context.Context,
	input *clientsDomain.CreateClientInput,
) (*clientsDomain.Client, error) {
	now := time.Now().UTC()
	record := &clientsDomain.ClientRecord{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.encryptInto(record, input.FirstName, input.LastName, input.DateOfBirth,
		input.Gender, input.ContactNumber, input.Email, input.Address); err != nil {
		return nil, err
	}

	if err := c.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return c.decryptRecord(record), nil
}

// Get fetches a client and decrypts it field by field.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error) {
	record, err := c.repo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return c.decryptRecord(record), nil
}

// List fetches and decrypts a page of clients, newest first.
func (c *clientUseCase) List(ctx context.Context, offset, limit int) ([]*clientsDomain.Client, error) {
	records, err := c.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	clients := make([]*clientsDomain.Client, 0, len(records))
	for _, record := range records {
		clients = append(clients, c.decryptRecord(record))
	}
	return clients, nil
}

// Search over encrypted columns cannot match anything server-side. The
// contract is an empty result, not an error, so list pages with a leftover
// query parameter degrade gracefully.
func (c *clientUseCase) Search(ctx context.Context, query string) ([]*clientsDomain.Client, error) {
	if query != "" {
		slog.Warn("client search over encrypted fields is unsupported, returning empty result",
			"query_length", len(query))
	}
	return []*clientsDomain.Client{}, nil
}

// Update encrypts the input and replaces the stored record.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	input *clientsDomain.UpdateClientInput,
) (*clientsDomain.Client, error) {
	existing, err := c.repo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	record := &clientsDomain.ClientRecord{
		ID:        clientID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if err := c.encryptInto(record, input.FirstName, input.LastName, input.DateOfBirth,
		input.Gender, input.ContactNumber, input.Email, input.Address); err != nil {
		return nil, err
	}

	if err := c.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	return c.decryptRecord(record), nil
}

// Delete removes a client.
func (c *clientUseCase) Delete(ctx context.Context, clientID uuid.UUID) error {
	return c.repo.Delete(ctx, clientID)
}

// encryptInto encrypts the plaintext fields into the record. Empty optional
// fields come back nil from the codec and are stored as NULL. Any cipher
// failure aborts the whole write; a half-encrypted record must never be
// persisted.
func (c *clientUseCase) encryptInto(
	record *clientsDomain.ClientRecord,
	firstName, lastName, dateOfBirth, gender, contactNumber, email, address string,
) error {
	var err error

	if record.FirstName, err = c.codec.EncryptField(firstName); err != nil {
		return err
	}
	if record.LastName, err = c.codec.EncryptField(lastName); err != nil {
		return err
	}
	if record.DateOfBirth, err = c.codec.EncryptField(dateOfBirth); err != nil {
		return err
	}
	if record.Gender, err = c.codec.EncryptField(gender); err != nil {
		return err
	}
	if record.ContactNumber, err = c.codec.EncryptField(contactNumber); err != nil {
		return err
	}
	if record.Email, err = c.codec.EncryptField(email); err != nil {
		return err
	}
	if record.Address, err = c.codec.EncryptField(address); err != nil {
		return err
	}

	return nil
}

// decryptRecord maps a stored record to its decrypted view. Each field is
// decrypted independently so one corrupt value cannot take its siblings down
// with it.
func (c *clientUseCase) decryptRecord(record *clientsDomain.ClientRecord) *clientsDomain.Client {
	return &clientsDomain.Client{
		ID:            record.ID,
		FirstName:     c.decryptRequired(record.ID, "first_name", record.FirstName),
		LastName:      c.decryptRequired(record.ID, "last_name", record.LastName),
		DateOfBirth:   c.decryptRequired(record.ID, "date_of_birth", record.DateOfBirth),
		Gender:        c.decryptOptional(record.ID, "gender", record.Gender),
		ContactNumber: c.decryptRequired(record.ID, "contact_number", record.ContactNumber),
		Email:         c.decryptRequired(record.ID, "email", record.Email),
		Address:       c.decryptOptional(record.ID, "address", record.Address),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

// decryptRequired decrypts a field that a well-formed record always carries.
// A NULL here means the row predates the schema or was corrupted; it gets the
// placeholder like any other decryption failure.
func (c *clientUseCase) decryptRequired(clientID uuid.UUID, field string, encoded *string) string {
	if encoded == nil {
		slog.Warn("required encrypted field is null",
			"client_id", clientID, "field", field)
		return cryptoDomain.DecryptionPlaceholder
	}

	plaintext, err := c.codec.Decrypt(*encoded)
	if err != nil {
		slog.Warn("failed to decrypt client field",
			"client_id", clientID, "field", field, "error", err)
		return cryptoDomain.DecryptionPlaceholder
	}
	return plaintext
}

// decryptOptional decrypts a field that may legitimately be NULL.
func (c *clientUseCase) decryptOptional(clientID uuid.UUID, field string, encoded *string) *string {
	if encoded == nil {
		return nil
	}

	plaintext, err := c.codec.Decrypt(*encoded)
	if err != nil {
		slog.Warn("failed to decrypt client field",
			"client_id", clientID, "field", field, "error", err)
		placeholder := cryptoDomain.DecryptionPlaceholder
		return &placeholder
	}
	return &plaintext
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(repo ClientRepository, codec cryptoService.FieldCodec) ClientUseCase {
	return &clientUseCase{repo: repo, codec: codec}
}
