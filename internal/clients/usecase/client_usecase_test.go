package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
	cryptoDomain "github.com/healthdesk/healthinfo/internal/crypto/domain"
	cryptoService "github.com/healthdesk/healthinfo/internal/crypto/service"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, record *clientsDomain.ClientRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockClientRepository) Update(ctx context.Context, record *clientsDomain.ClientRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*clientsDomain.ClientRecord, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientsDomain.ClientRecord), args.Error(1)
}

func (m *mockClientRepository) List(ctx context.Context, offset, limit int) ([]*clientsDomain.ClientRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clientsDomain.ClientRecord), args.Error(1)
}

func (m *mockClientRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// mockFieldCodec stands in for the cipher when a test needs to force
// encryption failures.
type mockFieldCodec struct {
	mock.Mock
}

func (m *mockFieldCodec) EncryptField(plaintext string) (*string, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *mockFieldCodec) Decrypt(encoded string) (string, error) {
	args := m.Called(encoded)
	return args.String(0), args.Error(1)
}

func newTestCodec(t *testing.T) cryptoService.FieldCodec {
	t.Helper()
	codec, err := cryptoService.NewAESFieldCipher(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	return codec
}

func fullCreateInput() *clientsDomain.CreateClientInput {
	return &clientsDomain.CreateClientInput{
		FirstName:     "Jane",
		LastName:      "Doe",
		DateOfBirth:   "1990-04-12",
		Gender:        "female",
		ContactNumber: "+1-555-0100",
		Email:         "jane.doe@example.com",
		Address:       "12 Main St",
	}
}

func TestClientUseCase_Create(t *testing.T) {
	t.Run("Success_EncryptsAllFields", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		var stored *clientsDomain.ClientRecord
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ClientRecord")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*clientsDomain.ClientRecord)
			}).
			Return(nil)

		client, err := useCase.Create(context.Background(), fullCreateInput())
		require.NoError(t, err)

		// The returned view is the decrypted input
		assert.Equal(t, "Jane", client.FirstName)
		assert.Equal(t, "Doe", client.LastName)
		assert.Equal(t, "1990-04-12", client.DateOfBirth)
		require.NotNil(t, client.Gender)
		assert.Equal(t, "female", *client.Gender)
		require.NotNil(t, client.Address)
		assert.Equal(t, "12 Main St", *client.Address)

		// The stored record holds ciphertext, not plaintext
		require.NotNil(t, stored)
		require.NotNil(t, stored.FirstName)
		assert.NotEqual(t, "Jane", *stored.FirstName)
		assert.NotContains(t, *stored.Email, "jane.doe")

		plain, err := codec.Decrypt(*stored.FirstName)
		require.NoError(t, err)
		assert.Equal(t, "Jane", plain)
	})

	t.Run("Success_EmptyOptionalFieldsStoredAsNull", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		var stored *clientsDomain.ClientRecord
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ClientRecord")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*clientsDomain.ClientRecord)
			}).
			Return(nil)

		input := fullCreateInput()
		input.Gender = ""
		input.Address = ""

		client, err := useCase.Create(context.Background(), input)
		require.NoError(t, err)

		assert.Nil(t, client.Gender)
		assert.Nil(t, client.Address)
		require.NotNil(t, stored)
		assert.Nil(t, stored.Gender)
		assert.Nil(t, stored.Address)
	})

	t.Run("Error_EncryptionFailureAbortsWrite", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := &mockFieldCodec{}
		useCase := NewClientUseCase(repo, codec)

		codec.On("EncryptField", "Jane").Return(nil, cryptoDomain.ErrEncryptionFailed)

		client, err := useCase.Create(context.Background(), fullCreateInput())
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
		assert.Nil(t, client)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		client, err := useCase.Create(context.Background(), fullCreateInput())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, client)
	})
}

func TestClientUseCase_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		record := encryptedRecord(t, codec, "Jane", "Doe")
		repo.On("Get", mock.Anything, record.ID).Return(record, nil)

		client, err := useCase.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", client.FirstName)
		assert.Equal(t, "Doe", client.LastName)
	})

	t.Run("CorruptFieldGetsPlaceholder", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		record := encryptedRecord(t, codec, "Jane", "Doe")
		garbage := "not-a-valid-ciphertext"
		record.FirstName = &garbage
		repo.On("Get", mock.Anything, record.ID).Return(record, nil)

		client, err := useCase.Get(context.Background(), record.ID)
		require.NoError(t, err)

		// The corrupt field carries the placeholder, its siblings survive
		assert.Equal(t, cryptoDomain.DecryptionPlaceholder, client.FirstName)
		assert.Equal(t, "Doe", client.LastName)
	})

	t.Run("NullRequiredFieldGetsPlaceholder", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		record := encryptedRecord(t, codec, "Jane", "Doe")
		record.Email = nil
		repo.On("Get", mock.Anything, record.ID).Return(record, nil)

		client, err := useCase.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.DecryptionPlaceholder, client.Email)
	})

	t.Run("CorruptOptionalFieldGetsPlaceholder", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		record := encryptedRecord(t, codec, "Jane", "Doe")
		garbage := "ffff"
		record.Address = &garbage
		repo.On("Get", mock.Anything, record.ID).Return(record, nil)

		client, err := useCase.Get(context.Background(), record.ID)
		require.NoError(t, err)
		require.NotNil(t, client.Address)
		assert.Equal(t, cryptoDomain.DecryptionPlaceholder, *client.Address)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		clientID := uuid.Must(uuid.NewV7())
		repo.On("Get", mock.Anything, clientID).Return(nil, clientsDomain.ErrClientNotFound)

		client, err := useCase.Get(context.Background(), clientID)
		assert.ErrorIs(t, err, clientsDomain.ErrClientNotFound)
		assert.Nil(t, client)
	})
}

func TestClientUseCase_List(t *testing.T) {
	repo := &mockClientRepository{}
	codec := newTestCodec(t)
	useCase := NewClientUseCase(repo, codec)

	records := []*clientsDomain.ClientRecord{
		encryptedRecord(t, codec, "Jane", "Doe"),
		encryptedRecord(t, codec, "John", "Smith"),
	}
	repo.On("List", mock.Anything, 0, 50).Return(records, nil)

	clients, err := useCase.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Jane", clients[0].FirstName)
	assert.Equal(t, "John", clients[1].FirstName)
}

func TestClientUseCase_Search(t *testing.T) {
	t.Run("NonEmptyQueryReturnsEmptyList", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		clients, err := useCase.Search(context.Background(), "Jane")
		require.NoError(t, err)
		assert.Empty(t, clients)
		assert.NotNil(t, clients)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("EmptyQueryReturnsEmptyList", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		clients, err := useCase.Search(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, clients)
	})
}

func TestClientUseCase_Update(t *testing.T) {
	t.Run("Success_ReencryptsAndPreservesCreatedAt", func(t *testing.T) {
		repo := &mockClientRepository{}
		codec := newTestCodec(t)
		useCase := NewClientUseCase(repo, codec)

		existing := encryptedRecord(t, codec, "Jane", "Doe")
		existing.CreatedAt = time.Now().UTC().Add(-24 * time.Hour)
		repo.On("Get", mock.Anything, existing.ID).Return(existing, nil)

		var stored *clientsDomain.ClientRecord
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ClientRecord")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*clientsDomain.ClientRecord)
			}).
			Return(nil)

		input := &clientsDomain.UpdateClientInput{
			FirstName:     "Janet",
			LastName:      "Doe",
			DateOfBirth:   "1990-04-12",
			ContactNumber: "+1-555-0100",
			Email:         "janet.doe@example.com",
		}

		client, err := useCase.Update(context.Background(), existing.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Janet", client.FirstName)
		assert.Nil(t, client.Gender)

		require.NotNil(t, stored)
		assert.Equal(t, existing.CreatedAt, stored.CreatedAt)
		assert.True(t, stored.UpdatedAt.After(existing.CreatedAt))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mockClientRepository{}
		useCase := NewClientUseCase(repo, newTestCodec(t))

		clientID := uuid.Must(uuid.NewV7())
		repo.On("Get", mock.Anything, clientID).Return(nil, clientsDomain.ErrClientNotFound)

		client, err := useCase.Update(context.Background(), clientID, &clientsDomain.UpdateClientInput{})
		assert.ErrorIs(t, err, clientsDomain.ErrClientNotFound)
		assert.Nil(t, client)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestClientUseCase_Delete(t *testing.T) {
	repo := &mockClientRepository{}
	useCase := NewClientUseCase(repo, newTestCodec(t))

	clientID := uuid.Must(uuid.NewV7())
	repo.On("Delete", mock.Anything, clientID).Return(nil)

	err := useCase.Delete(context.Background(), clientID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

// encryptedRecord builds a stored record by running real plaintext through
// the codec, the same way Create does.
func encryptedRecord(t *testing.T, codec cryptoService.FieldCodec, firstName, lastName string) *clientsDomain.ClientRecord {
	t.Helper()

	encrypt := func(plaintext string) *string {
		encoded, err := codec.EncryptField(plaintext)
		require.NoError(t, err)
		require.NotNil(t, encoded)
		return encoded
	}

	now := time.Now().UTC()
	return &clientsDomain.ClientRecord{
		ID:            uuid.Must(uuid.NewV7()),
		FirstName:     encrypt(firstName),
		LastName:      encrypt(lastName),
		DateOfBirth:   encrypt("1990-04-12"),
		Gender:        nil,
		ContactNumber: encrypt("+1-555-0100"),
		Email:         encrypt(firstName + "@example.com"),
		Address:       nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
