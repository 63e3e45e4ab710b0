package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	"github.com/healthdesk/healthinfo/internal/config"
)

// mockUserRepository is a mock implementation of UserRepository for testing.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*authDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// mockRefreshTokenRepository is a mock implementation of RefreshTokenRepository for testing.
type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) GetByUserAndToken(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (*authDomain.RefreshToken, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) RevokeIfActive(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// mockTxManager runs the transactional function directly against the same context.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// mockPasswordService is a mock implementation of PasswordService for testing.
type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Compare(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// mockTokenSigner is a mock implementation of TokenSigner for testing.
type mockTokenSigner struct {
	mock.Mock
}

func (m *mockTokenSigner) Sign(userID uuid.UUID, lifetime time.Duration) (string, time.Time, error) {
	args := m.Called(userID, lifetime)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// mockTokenVerifier is a mock implementation of TokenVerifier for testing.
type mockTokenVerifier struct {
	mock.Mock
}

func (m *mockTokenVerifier) Verify(token string) (*authDomain.TokenPayload, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPayload), args.Error(1)
}

type useCaseMocks struct {
	userRepo        *mockUserRepository
	tokenRepo       *mockRefreshTokenRepository
	txManager       *mockTxManager
	passwordService *mockPasswordService
	tokenSigner     *mockTokenSigner
	accessVerifier  *mockTokenVerifier
	refreshVerifier *mockTokenVerifier
}

func newUseCase() (AuthUseCase, *useCaseMocks) {
	mocks := &useCaseMocks{
		userRepo:        &mockUserRepository{},
		tokenRepo:       &mockRefreshTokenRepository{},
		txManager:       &mockTxManager{},
		passwordService: &mockPasswordService{},
		tokenSigner:     &mockTokenSigner{},
		accessVerifier:  &mockTokenVerifier{},
		refreshVerifier: &mockTokenVerifier{},
	}

	cfg := &config.Config{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	useCase := NewAuthUseCase(
		cfg,
		mocks.userRepo,
		mocks.tokenRepo,
		mocks.txManager,
		mocks.passwordService,
		mocks.tokenSigner,
		mocks.accessVerifier,
		mocks.refreshVerifier,
	)

	return useCase, mocks
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesUserWithHashedPassword", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.passwordService.On("Hash", "secret123").Return("$2a$10$hashed", nil)
		mocks.userRepo.On("Create", ctx, mock.MatchedBy(func(u *authDomain.User) bool {
			return u.Email == "new@example.com" && u.PasswordHash == "$2a$10$hashed"
		})).Return(nil)

		user, err := useCase.Register(ctx, &authDomain.RegisterInput{
			Email:    "new@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEqual(t, uuid.Nil, user.ID)
		mocks.userRepo.AssertExpectations(t)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.passwordService.On("Hash", "secret123").Return("$2a$10$hashed", nil)
		mocks.userRepo.On("Create", ctx, mock.Anything).Return(authDomain.ErrEmailTaken)

		user, err := useCase.Register(ctx, &authDomain.RegisterInput{
			Email:    "taken@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, authDomain.ErrEmailTaken)
		assert.Nil(t, user)
	})
}

func TestAuthUseCase_SignIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	accessExpiry := time.Now().UTC().Add(15 * time.Minute)
	refreshExpiry := time.Now().UTC().Add(7 * 24 * time.Hour)

	storedUser := &authDomain.User{
		ID:           userID,
		Email:        "user@example.com",
		PasswordHash: "$2a$10$stored",
	}

	t.Run("Success_IssuesAndPersistsPair", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.userRepo.On("GetByEmail", ctx, "user@example.com").Return(storedUser, nil)
		mocks.passwordService.On("Compare", "secret123", "$2a$10$stored").Return(true)
		mocks.tokenSigner.On("Sign", userID, 15*time.Minute).Return("access-jwt", accessExpiry, nil)
		mocks.tokenSigner.On("Sign", userID, 7*24*time.Hour).Return("refresh-jwt", refreshExpiry, nil)
		mocks.tokenRepo.On("Create", ctx, mock.MatchedBy(func(r *authDomain.RefreshToken) bool {
			return r.UserID == userID && r.Token == "refresh-jwt" &&
				r.ExpiresAt.Equal(refreshExpiry) && r.RevokedAt == nil
		})).Return(nil)

		user, pair, err := useCase.SignIn(ctx, &authDomain.SignInInput{
			Email:    "user@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, storedUser, user)
		assert.Equal(t, "access-jwt", pair.AccessToken)
		assert.Equal(t, "refresh-jwt", pair.RefreshToken)
		assert.Equal(t, accessExpiry, pair.ExpiresAt)
		mocks.tokenRepo.AssertExpectations(t)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.userRepo.On("GetByEmail", ctx, "nobody@example.com").
			Return(nil, authDomain.ErrUserNotFound)

		user, pair, err := useCase.SignIn(ctx, &authDomain.SignInInput{
			Email:    "nobody@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Nil(t, pair)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.userRepo.On("GetByEmail", ctx, "user@example.com").Return(storedUser, nil)
		mocks.passwordService.On("Compare", "wrong", "$2a$10$stored").Return(false)

		user, pair, err := useCase.SignIn(ctx, &authDomain.SignInInput{
			Email:    "user@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Nil(t, pair)
		mocks.tokenSigner.AssertNotCalled(t, "Sign")
	})

	t.Run("Error_StoreFailureAbortsSignIn", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.userRepo.On("GetByEmail", ctx, "user@example.com").Return(storedUser, nil)
		mocks.passwordService.On("Compare", "secret123", "$2a$10$stored").Return(true)
		mocks.tokenSigner.On("Sign", userID, 15*time.Minute).Return("access-jwt", accessExpiry, nil)
		mocks.tokenSigner.On("Sign", userID, 7*24*time.Hour).Return("refresh-jwt", refreshExpiry, nil)
		mocks.tokenRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		user, pair, err := useCase.SignIn(ctx, &authDomain.SignInInput{
			Email:    "user@example.com",
			Password: "secret123",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Nil(t, pair)
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	accessExpiry := time.Now().UTC().Add(15 * time.Minute)
	refreshExpiry := time.Now().UTC().Add(7 * 24 * time.Hour)
	payload := &authDomain.TokenPayload{UserID: userID, ExpiresAt: refreshExpiry}

	t.Run("Success_RotatesTokenInTransaction", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.refreshVerifier.On("Verify", "old-refresh").Return(payload, nil)
		mocks.userRepo.On("Get", ctx, userID).Return(&authDomain.User{ID: userID}, nil)
		mocks.tokenSigner.On("Sign", userID, 15*time.Minute).Return("new-access", accessExpiry, nil)
		mocks.tokenSigner.On("Sign", userID, 7*24*time.Hour).Return("new-refresh", refreshExpiry, nil)
		mocks.txManager.On("WithTx", ctx).Return(nil)
		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "old-refresh").Return(true, nil)
		mocks.tokenRepo.On("Create", ctx, mock.MatchedBy(func(r *authDomain.RefreshToken) bool {
			return r.Token == "new-refresh" && r.UserID == userID
		})).Return(nil)

		pair, err := useCase.Refresh(ctx, "old-refresh")

		require.NoError(t, err)
		assert.Equal(t, "new-access", pair.AccessToken)
		assert.Equal(t, "new-refresh", pair.RefreshToken)
		mocks.tokenRepo.AssertExpectations(t)
	})

	t.Run("Error_InvalidSignature", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.refreshVerifier.On("Verify", "garbage").
			Return(nil, authDomain.ErrInvalidCredentials)

		pair, err := useCase.Refresh(ctx, "garbage")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, pair)
		mocks.tokenRepo.AssertNotCalled(t, "RevokeIfActive")
	})

	t.Run("Error_RaceLoserGetsInvalidCredentials", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.refreshVerifier.On("Verify", "old-refresh").Return(payload, nil)
		mocks.userRepo.On("Get", ctx, userID).Return(&authDomain.User{ID: userID}, nil)
		mocks.tokenSigner.On("Sign", userID, 15*time.Minute).Return("new-access", accessExpiry, nil)
		mocks.tokenSigner.On("Sign", userID, 7*24*time.Hour).Return("new-refresh", refreshExpiry, nil)
		mocks.txManager.On("WithTx", ctx).Return(nil)
		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "old-refresh").Return(false, nil)

		pair, err := useCase.Refresh(ctx, "old-refresh")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, pair)
		mocks.tokenRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DeletedUserRevokesOrphanedToken", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.refreshVerifier.On("Verify", "orphan-refresh").Return(payload, nil)
		mocks.userRepo.On("Get", ctx, userID).Return(nil, authDomain.ErrUserNotFound)
		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "orphan-refresh").Return(true, nil)

		pair, err := useCase.Refresh(ctx, "orphan-refresh")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, pair)
		mocks.tokenRepo.AssertCalled(t, "RevokeIfActive", ctx, userID, "orphan-refresh")
	})
}

func TestAuthUseCase_ValidateRefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	activeRow := func() *authDomain.RefreshToken {
		return &authDomain.RefreshToken{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    userID,
			Token:     "refresh-jwt",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}
	}

	t.Run("True_ActiveRowAndValidSignature", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").Return(activeRow(), nil)
		mocks.refreshVerifier.On("Verify", "refresh-jwt").
			Return(&authDomain.TokenPayload{UserID: userID}, nil)

		assert.True(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
	})

	t.Run("False_RowNotFound", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").
			Return(nil, authDomain.ErrTokenNotFound)

		assert.False(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
	})

	t.Run("False_RevokedRow", func(t *testing.T) {
		useCase, mocks := newUseCase()

		revokedAt := time.Now().UTC()
		row := activeRow()
		row.RevokedAt = &revokedAt
		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").Return(row, nil)

		assert.False(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
		mocks.refreshVerifier.AssertNotCalled(t, "Verify")
	})

	t.Run("False_ExpiredRowIsRevokedOpportunistically", func(t *testing.T) {
		useCase, mocks := newUseCase()

		row := activeRow()
		row.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").Return(row, nil)
		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "refresh-jwt").Return(true, nil)

		assert.False(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
		mocks.tokenRepo.AssertCalled(t, "RevokeIfActive", ctx, userID, "refresh-jwt")
	})

	t.Run("False_InfrastructureFailureNeverErrors", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").
			Return(nil, errors.New("connection refused"))

		assert.False(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
	})

	t.Run("False_InvalidSignature", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("GetByUserAndToken", ctx, userID, "refresh-jwt").Return(activeRow(), nil)
		mocks.refreshVerifier.On("Verify", "refresh-jwt").
			Return(nil, authDomain.ErrInvalidCredentials)

		assert.False(t, useCase.ValidateRefreshToken(ctx, userID, "refresh-jwt"))
	})
}

func TestAuthUseCase_Revoke(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_ActiveToken", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "refresh-jwt").Return(true, nil)

		assert.NoError(t, useCase.Revoke(ctx, userID, "refresh-jwt"))
	})

	t.Run("Success_AlreadyRevokedIsNoOp", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "refresh-jwt").Return(false, nil)

		assert.NoError(t, useCase.Revoke(ctx, userID, "refresh-jwt"))
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.tokenRepo.On("RevokeIfActive", ctx, userID, "refresh-jwt").
			Return(false, errors.New("db down"))

		assert.Error(t, useCase.Revoke(ctx, userID, "refresh-jwt"))
	})
}

func TestAuthUseCase_RevokeAll(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	useCase, mocks := newUseCase()
	mocks.tokenRepo.On("RevokeAllForUser", ctx, userID).Return(int64(3), nil)

	count, err := useCase.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestAuthUseCase_VerifyAccessToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("ReturnsPayloadForValidToken", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.accessVerifier.On("Verify", "access-jwt").
			Return(&authDomain.TokenPayload{UserID: userID}, nil)

		payload := useCase.VerifyAccessToken(ctx, "access-jwt")
		require.NotNil(t, payload)
		assert.Equal(t, userID, payload.UserID)
	})

	t.Run("ReturnsNilForInvalidToken", func(t *testing.T) {
		useCase, mocks := newUseCase()

		mocks.accessVerifier.On("Verify", "garbage").
			Return(nil, authDomain.ErrInvalidCredentials)

		assert.Nil(t, useCase.VerifyAccessToken(ctx, "garbage"))
	})
}
