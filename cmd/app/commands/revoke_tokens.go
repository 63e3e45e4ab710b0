package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/healthdesk/healthinfo/internal/app"
	authUseCase "github.com/healthdesk/healthinfo/internal/auth/usecase"
	"github.com/healthdesk/healthinfo/internal/config"
)

// RunRevokeTokens revokes every active refresh token of a user. Useful when
// an account is suspected compromised and all sessions must end immediately.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeTokens(ctx context.Context, userID, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	authUC, err := container.AuthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize auth use case: %w", err)
	}

	return revokeTokens(ctx, authUC, logger, userID, format, DefaultIO())
}

// revokeTokens performs the revocation against the use case. Split from
// RunRevokeTokens so tests can inject the use case and IO.
func revokeTokens(
	ctx context.Context,
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
	userIDStr string,
	format string,
	io IOTuple,
) error {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	logger.Info("revoking all refresh tokens", slog.String("user_id", userID.String()))

	revoked, err := authUC.RevokeAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	if format == "json" {
		outputRevokeJSON(userID, revoked, io.Writer)
	} else {
		outputRevokeText(userID, revoked, io.Writer)
	}

	logger.Info("tokens revoked",
		slog.String("user_id", userID.String()),
		slog.Int64("revoked", revoked),
	)

	return nil
}

// outputRevokeText outputs the result in human-readable text format.
func outputRevokeText(userID uuid.UUID, revoked int64, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Revoked %d refresh token(s) for user %s\n", revoked, userID.String())
}

// outputRevokeJSON outputs the result in JSON format for machine consumption.
func outputRevokeJSON(userID uuid.UUID, revoked int64, writer io.Writer) {
	result := map[string]string{
		"user_id": userID.String(),
		"revoked": strconv.FormatInt(revoked, 10),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
