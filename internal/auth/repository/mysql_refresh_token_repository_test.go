package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
)

func TestMySQLRefreshTokenRepository_RevokeIfActive(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	userIDBytes, err := userID.MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name         string
		affectedRows int64
		expected     bool
	}{
		{name: "active token revoked", affectedRows: 1, expected: true},
		{name: "already revoked or missing", affectedRows: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("UPDATE refresh_tokens").
				WithArgs(sqlmock.AnyArg(), userIDBytes, "the-token").
				WillReturnResult(sqlmock.NewResult(0, tt.affectedRows))

			repo := NewMySQLRefreshTokenRepository(db)
			revoked, err := repo.RevokeIfActive(context.Background(), userID, "the-token")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, revoked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMySQLRefreshTokenRepository_RevokeIfActive_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE refresh_tokens").
		WillReturnError(errors.New("connection reset"))

	repo := NewMySQLRefreshTokenRepository(db)
	revoked, err := repo.RevokeIfActive(context.Background(), uuid.Must(uuid.NewV7()), "the-token")

	assert.Error(t, err)
	assert.False(t, revoked)
}

func TestMySQLRefreshTokenRepository_GetByUserAndToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tokenID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	tokenIDBytes, err := tokenID.MarshalBinary()
	require.NoError(t, err)
	userIDBytes, err := userID.MarshalBinary()
	require.NoError(t, err)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "revoked_at", "created_at"}).
		AddRow(tokenIDBytes, userIDBytes, "the-token", now.Add(time.Hour), nil, now)

	mock.ExpectQuery("SELECT id, user_id, token, expires_at, revoked_at, created_at").
		WithArgs(userIDBytes, "the-token").
		WillReturnRows(rows)

	repo := NewMySQLRefreshTokenRepository(db)
	token, err := repo.GetByUserAndToken(context.Background(), userID, "the-token")

	require.NoError(t, err)
	assert.Equal(t, tokenID, token.ID)
	assert.Equal(t, userID, token.UserID)
	assert.Equal(t, "the-token", token.Token)
	assert.Nil(t, token.RevokedAt)
}

func TestMySQLRefreshTokenRepository_GetByUserAndToken_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.Must(uuid.NewV7())
	userIDBytes, err := userID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, user_id, token, expires_at, revoked_at, created_at").
		WithArgs(userIDBytes, "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "revoked_at", "created_at"}))

	repo := NewMySQLRefreshTokenRepository(db)
	token, err := repo.GetByUserAndToken(context.Background(), userID, "missing")

	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
	assert.Nil(t, token)
}
