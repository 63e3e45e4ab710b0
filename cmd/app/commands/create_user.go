package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/healthdesk/healthinfo/internal/app"
	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	authUseCase "github.com/healthdesk/healthinfo/internal/auth/usecase"
	"github.com/healthdesk/healthinfo/internal/config"
)

// RunCreateUser creates a new user account from the command line.
// Prompts for the password when it is not provided as a flag. Outputs the
// new account in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(ctx context.Context, email, password, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	authUC, err := container.AuthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize auth use case: %w", err)
	}

	return createUser(ctx, authUC, logger, email, password, format, DefaultIO())
}

// createUser performs the account creation against the use case. Split from
// RunCreateUser so tests can inject the use case and IO.
func createUser(
	ctx context.Context,
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("email", email))

	if password == "" {
		// Interactive mode
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	input := &authDomain.RegisterInput{
		Email:    email,
		Password: password,
	}

	user, err := authUC.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(user, io.Writer)
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// promptForPassword interactively prompts the user for a password and a
// confirmation.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)
	writer := io.Writer

	_, _ = fmt.Fprint(writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	_, _ = fmt.Fprint(writer, "Confirm password: ")
	confirm, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	confirm = strings.TrimRight(confirm, "\r\n")

	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}

	return password, nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *authDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *authDomain.User, writer io.Writer) {
	result := map[string]string{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
