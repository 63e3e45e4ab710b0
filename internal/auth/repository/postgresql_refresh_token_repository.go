package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	"github.com/healthdesk/healthinfo/internal/database"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements RefreshToken persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new RefreshToken into the PostgreSQL database.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByUserAndToken retrieves a RefreshToken by its user and token string.
// Returns ErrTokenNotFound if no matching row exists. Lookups are always
// scoped to the user so one user's token can never resolve against another's.
func (p *PostgreSQLRefreshTokenRepository) GetByUserAndToken(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token, expires_at, revoked_at, created_at
			  FROM refresh_tokens WHERE user_id = $1 AND token = $2`

	var refreshToken authDomain.RefreshToken

	err := querier.QueryRowContext(ctx, query, userID, token).Scan(
		&refreshToken.ID,
		&refreshToken.UserID,
		&refreshToken.Token,
		&refreshToken.ExpiresAt,
		&refreshToken.RevokedAt,
		&refreshToken.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	return &refreshToken, nil
}

// RevokeIfActive marks the token revoked only if it is currently unrevoked.
// Returns whether a row was actually revoked. The conditional UPDATE makes
// concurrent refresh attempts race safely: exactly one caller observes true,
// every other caller observes false.
func (p *PostgreSQLRefreshTokenRepository) RevokeIfActive(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = $1
			  WHERE user_id = $2 AND token = $3 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), userID, token)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to revoke refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}

	return affected == 1, nil
}

// RevokeAllForUser marks every active token of the user revoked and returns
// how many were affected. Used by sign-out-everywhere.
func (p *PostgreSQLRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = $1
			  WHERE user_id = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke refresh tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}

	return affected, nil
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL RefreshToken repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}
