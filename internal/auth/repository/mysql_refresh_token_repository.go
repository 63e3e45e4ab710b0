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

// MySQLRefreshTokenRepository implements RefreshToken persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new RefreshToken into the MySQL database.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
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
// Returns ErrTokenNotFound if no matching row exists.
func (m *MySQLRefreshTokenRepository) GetByUserAndToken(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token, expires_at, revoked_at, created_at
			  FROM refresh_tokens WHERE user_id = ? AND token = ?`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	var refreshToken authDomain.RefreshToken
	var idBytes, scannedUserID []byte

	err = querier.QueryRowContext(ctx, query, userIDBytes, token).Scan(
		&idBytes,
		&scannedUserID,
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

	if err := refreshToken.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token id")
	}
	if err := refreshToken.UserID.UnmarshalBinary(scannedUserID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	return &refreshToken, nil
}

// RevokeIfActive marks the token revoked only if it is currently unrevoked.
// Returns whether a row was actually revoked. Exactly one of any set of
// concurrent callers observes true.
func (m *MySQLRefreshTokenRepository) RevokeIfActive(
	ctx context.Context,
	userID uuid.UUID,
	token string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = ?
			  WHERE user_id = ? AND token = ? AND revoked_at IS NULL`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), userIDBytes, token)
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
// how many were affected.
func (m *MySQLRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = ?
			  WHERE user_id = ? AND revoked_at IS NULL`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), userIDBytes)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke refresh tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}

	return affected, nil
}

// NewMySQLRefreshTokenRepository creates a new MySQL RefreshToken repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
