package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRevokeTokens(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}
		userID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RevokeAll", ctx, userID).Return(int64(3), nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := revokeTokens(ctx, mockUseCase, logger, userID.String(), "text", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Revoked 3 refresh token(s)")
		require.Contains(t, out.String(), userID.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}
		userID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RevokeAll", ctx, userID).Return(int64(0), nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := revokeTokens(ctx, mockUseCase, logger, userID.String(), "json", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"revoked": "0"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		mockUseCase := &mockAuthUseCase{}
		io := IOTuple{Writer: &bytes.Buffer{}}

		err := revokeTokens(ctx, mockUseCase, logger, "not-a-uuid", "text", io)

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid user ID")
		mockUseCase.AssertNotCalled(t, "RevokeAll")
	})
}
