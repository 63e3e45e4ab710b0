package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	"github.com/healthdesk/healthinfo/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Register records metrics for account registration operations.
func (a *authUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := a.next.Register(ctx, input)
	a.record(ctx, "register", start, err)
	return user, err
}

// SignIn records metrics for sign-in operations.
func (a *authUseCaseWithMetrics) SignIn(
	ctx context.Context,
	input *authDomain.SignInInput,
) (*authDomain.User, *authDomain.TokenPair, error) {
	start := time.Now()
	user, pair, err := a.next.SignIn(ctx, input)
	a.record(ctx, "sign_in", start, err)
	return user, pair, err
}

// Refresh records metrics for token rotation operations.
func (a *authUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Refresh(ctx, refreshToken)
	a.record(ctx, "refresh", start, err)
	return pair, err
}

// ValidateRefreshToken records metrics for refresh token validation.
func (a *authUseCaseWithMetrics) ValidateRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	refreshToken string,
) bool {
	start := time.Now()
	valid := a.next.ValidateRefreshToken(ctx, userID, refreshToken)

	status := "valid"
	if !valid {
		status = "invalid"
	}
	a.metrics.RecordOperation(ctx, "auth", "validate_refresh_token", status)
	a.metrics.RecordDuration(ctx, "auth", "validate_refresh_token", time.Since(start), status)

	return valid
}

// Revoke records metrics for single token revocation operations.
func (a *authUseCaseWithMetrics) Revoke(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, userID, refreshToken)
	a.record(ctx, "revoke", start, err)
	return err
}

// RevokeAll records metrics for revoke-all operations.
func (a *authUseCaseWithMetrics) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	start := time.Now()
	count, err := a.next.RevokeAll(ctx, userID)
	a.record(ctx, "revoke_all", start, err)
	return count, err
}

// VerifyAccessToken records metrics for access token verification.
func (a *authUseCaseWithMetrics) VerifyAccessToken(
	ctx context.Context,
	accessToken string,
) *authDomain.TokenPayload {
	start := time.Now()
	payload := a.next.VerifyAccessToken(ctx, accessToken)

	status := "valid"
	if payload == nil {
		status = "invalid"
	}
	a.metrics.RecordOperation(ctx, "auth", "verify_access_token", status)
	a.metrics.RecordDuration(ctx, "auth", "verify_access_token", time.Since(start), status)

	return payload
}
