package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	"github.com/healthdesk/healthinfo/internal/testutil"
)

func newTestRefreshToken(userID uuid.UUID, token string) *authDomain.RefreshToken {
	now := time.Now().UTC()
	return &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		RevokedAt: nil,
		CreatedAt: now,
	}
}

func TestPostgreSQLRefreshTokenRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "tokens@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	token := newTestRefreshToken(userID, "refresh-token-1")
	err := repo.Create(ctx, token)
	require.NoError(t, err)

	retrieved, err := repo.GetByUserAndToken(ctx, userID, "refresh-token-1")
	require.NoError(t, err)

	assert.Equal(t, token.ID, retrieved.ID)
	assert.Equal(t, userID, retrieved.UserID)
	assert.Equal(t, "refresh-token-1", retrieved.Token)
	assert.Nil(t, retrieved.RevokedAt)
	assert.WithinDuration(t, token.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestPostgreSQLRefreshTokenRepository_GetByUserAndToken_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "missing@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	token, err := repo.GetByUserAndToken(ctx, userID, "never-issued")
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
	assert.Nil(t, token)
}

func TestPostgreSQLRefreshTokenRepository_GetByUserAndToken_ScopedToUser(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ownerID := testutil.CreateTestUser(t, db, "postgres", "owner@example.com")
	otherID := testutil.CreateTestUser(t, db, "postgres", "other@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newTestRefreshToken(ownerID, "owned-token"))
	require.NoError(t, err)

	// Another user presenting the same token string must not find the row.
	token, err := repo.GetByUserAndToken(ctx, otherID, "owned-token")
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
	assert.Nil(t, token)
}

func TestPostgreSQLRefreshTokenRepository_RevokeIfActive(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "revoke@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newTestRefreshToken(userID, "revocable-token"))
	require.NoError(t, err)

	// First revocation wins
	revoked, err := repo.RevokeIfActive(ctx, userID, "revocable-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Second attempt finds nothing active
	revoked, err = repo.RevokeIfActive(ctx, userID, "revocable-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	// The row still exists with revoked_at set
	retrieved, err := repo.GetByUserAndToken(ctx, userID, "revocable-token")
	require.NoError(t, err)
	require.NotNil(t, retrieved.RevokedAt)
	assert.WithinDuration(t, time.Now().UTC(), *retrieved.RevokedAt, 5*time.Second)
}

func TestPostgreSQLRefreshTokenRepository_RevokeIfActive_UnknownToken(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "unknown@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	revoked, err := repo.RevokeIfActive(ctx, userID, "never-issued")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestPostgreSQLRefreshTokenRepository_RevokeAllForUser(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "revokeall@example.com")
	bystanderID := testutil.CreateTestUser(t, db, "postgres", "bystander@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestRefreshToken(userID, "token-a")))
	require.NoError(t, repo.Create(ctx, newTestRefreshToken(userID, "token-b")))
	require.NoError(t, repo.Create(ctx, newTestRefreshToken(bystanderID, "token-c")))

	// Pre-revoke one of the user's tokens; it must not be counted again
	revoked, err := repo.RevokeIfActive(ctx, userID, "token-a")
	require.NoError(t, err)
	require.True(t, revoked)

	affected, err := repo.RevokeAllForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// The bystander's token stays active
	bystanderToken, err := repo.GetByUserAndToken(ctx, bystanderID, "token-c")
	require.NoError(t, err)
	assert.Nil(t, bystanderToken.RevokedAt)
}

func TestPostgreSQLRefreshTokenRepository_Create_WithTransaction(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	userID := testutil.CreateTestUser(t, db, "postgres", "tx@example.com")
	repo := NewPostgreSQLRefreshTokenRepository(db)
	ctx := context.Background()

	token := newTestRefreshToken(userID, "tx-token")

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	require.NoError(t, err)

	err = tx.Rollback()
	require.NoError(t, err)

	// Verify the token was not created (rollback worked)
	retrieved, err := repo.GetByUserAndToken(ctx, userID, "tx-token")
	assert.ErrorIs(t, err, authDomain.ErrTokenNotFound)
	assert.Nil(t, retrieved)
}
