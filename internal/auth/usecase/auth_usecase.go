package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	authService "github.com/healthdesk/healthinfo/internal/auth/service"
	"github.com/healthdesk/healthinfo/internal/config"
	"github.com/healthdesk/healthinfo/internal/database"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	tokenRepo       RefreshTokenRepository
	txManager       database.TxManager
	passwordService authService.PasswordService
	tokenSigner     authService.TokenSigner
	accessVerifier  authService.TokenVerifier
	refreshVerifier authService.TokenVerifier
}

// Register creates a new user account.
//
// The password is hashed before anything touches the database; the plain
// password never leaves this method.
func (a *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.User, error) {
	passwordHash, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn authenticates a user and issues a token pair.
//
// Security notes:
//   - Returns ErrInvalidCredentials for both unknown emails and wrong
//     passwords to prevent user enumeration
//   - The refresh token row is persisted before the pair is returned; a
//     storage failure aborts the sign-in so no unrevocable token escapes
func (a *authUseCase) SignIn(
	ctx context.Context,
	input *authDomain.SignInInput,
) (*authDomain.User, *authDomain.TokenPair, error) {
	user, err := a.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, nil, authDomain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !a.passwordService.Compare(input.Password, user.PasswordHash) {
		return nil, nil, authDomain.ErrInvalidCredentials
	}

	pair, err := a.issuePair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// issuePair signs an access and refresh token for the user and persists the
// refresh token row. The row's expiry is the exact instant embedded in the
// refresh JWT so the two can never disagree.
func (a *authUseCase) issuePair(ctx context.Context, userID uuid.UUID) (*authDomain.TokenPair, error) {
	accessToken, accessExpiresAt, err := a.tokenSigner.Sign(userID, a.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := a.tokenSigner.Sign(userID, a.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	row := &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: refreshExpiresAt,
		RevokedAt: nil,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.tokenRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

// Refresh rotates a refresh token.
//
// The rotation is atomic: revoking the presented token and persisting its
// replacement happen in one transaction, so a crash between the two steps
// can never leave the user without a valid token or with two. The
// conditional revoke also settles concurrent refresh races: the loser's
// RevokeIfActive reports no row revoked and the loser gets
// ErrInvalidCredentials.
func (a *authUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	payload, err := a.refreshVerifier.Verify(refreshToken)
	if err != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	// A signature-valid token for a deleted user is dead on arrival; revoke
	// the row if one survives.
	if _, err := a.userRepo.Get(ctx, payload.UserID); err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			if _, revokeErr := a.tokenRepo.RevokeIfActive(ctx, payload.UserID, refreshToken); revokeErr != nil {
				slog.Warn("failed to revoke orphaned refresh token", "error", revokeErr)
			}
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	accessToken, accessExpiresAt, err := a.tokenSigner.Sign(payload.UserID, a.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	newRefreshToken, refreshExpiresAt, err := a.tokenSigner.Sign(payload.UserID, a.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		revoked, err := a.tokenRepo.RevokeIfActive(txCtx, payload.UserID, refreshToken)
		if err != nil {
			return err
		}
		if !revoked {
			// Already revoked, never stored, or lost a concurrent rotation race.
			return authDomain.ErrInvalidCredentials
		}

		return a.tokenRepo.Create(txCtx, &authDomain.RefreshToken{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    payload.UserID,
			Token:     newRefreshToken,
			ExpiresAt: refreshExpiresAt,
			RevokedAt: nil,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    accessExpiresAt,
	}, nil
}

// ValidateRefreshToken reports whether the token is currently usable.
//
// Never returns an error: a caller asking "is this token good" gets a yes or
// a no, and infrastructure trouble is a no. An expired row that was never
// revoked is revoked here so the store does not accumulate usable-looking
// dead rows.
func (a *authUseCase) ValidateRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) bool {
	row, err := a.tokenRepo.GetByUserAndToken(ctx, userID, refreshToken)
	if err != nil {
		if !errors.Is(err, authDomain.ErrTokenNotFound) {
			slog.Warn("refresh token validation failed on lookup", "error", err)
		}
		return false
	}

	if row.RevokedAt != nil {
		return false
	}

	if !row.ExpiresAt.After(time.Now().UTC()) {
		if _, err := a.tokenRepo.RevokeIfActive(ctx, userID, refreshToken); err != nil {
			slog.Warn("failed to revoke expired refresh token", "error", err)
		}
		return false
	}

	if _, err := a.refreshVerifier.Verify(refreshToken); err != nil {
		return false
	}

	return true
}

// Revoke invalidates a single refresh token of the user. Idempotent.
func (a *authUseCase) Revoke(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	revoked, err := a.tokenRepo.RevokeIfActive(ctx, userID, refreshToken)
	if err != nil {
		return err
	}
	if !revoked {
		slog.Info("revoke matched no active refresh token", "user_id", userID)
	}
	return nil
}

// RevokeAll invalidates every active refresh token of the user.
func (a *authUseCase) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return a.tokenRepo.RevokeAllForUser(ctx, userID)
}

// VerifyAccessToken checks an access token and returns its payload, or nil
// when the token is invalid. Rejections are logged at debug level; access
// token checks run on every authenticated request and a stream of expired
// tokens is normal traffic, not an incident.
func (a *authUseCase) VerifyAccessToken(ctx context.Context, accessToken string) *authDomain.TokenPayload {
	payload, err := a.accessVerifier.Verify(accessToken)
	if err != nil {
		slog.Debug("access token rejected", "error", err)
		return nil
	}
	return payload
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
// accessVerifier checks access tokens on the request path; refreshVerifier
// checks refresh tokens during rotation and validation.
func NewAuthUseCase(
	config *config.Config,
	userRepo UserRepository,
	tokenRepo RefreshTokenRepository,
	txManager database.TxManager,
	passwordService authService.PasswordService,
	tokenSigner authService.TokenSigner,
	accessVerifier authService.TokenVerifier,
	refreshVerifier authService.TokenVerifier,
) AuthUseCase {
	return &authUseCase{
		config:          config,
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		txManager:       txManager,
		passwordService: passwordService,
		tokenSigner:     tokenSigner,
		accessVerifier:  accessVerifier,
		refreshVerifier: refreshVerifier,
	}
}
