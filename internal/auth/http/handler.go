package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/healthdesk/healthinfo/internal/auth/domain"
	"github.com/healthdesk/healthinfo/internal/auth/http/dto"
	authUseCase "github.com/healthdesk/healthinfo/internal/auth/usecase"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
	"github.com/healthdesk/healthinfo/internal/httputil"
	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// AuthHandler handles HTTP requests for account and token lifecycle operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUC,
		logger:      logger,
	}
}

// RegisterHandler creates a new user account.
// POST /v1/auth/register - No authentication required.
// Returns 201 Created with the new user, 409 Conflict for a duplicate email.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.authUseCase.Register(c.Request.Context(), &authDomain.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// SignInHandler authenticates a user and issues a token pair.
// POST /v1/auth/sign-in - No authentication required (this is the authentication endpoint).
// Returns 200 OK with user and tokens, 401 for any credential failure.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	var req dto.SignInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, pair, err := h.authUseCase.SignIn(c.Request.Context(), &authDomain.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SignInResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// RefreshHandler rotates a refresh token.
// POST /v1/auth/refresh - No authentication required; the refresh token is
// the credential. Returns 200 OK with a new pair, 401 for an invalid,
// expired, revoked, or race-losing token.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// RevokeHandler ends one session or all of them.
// POST /v1/auth/revoke - Requires authentication. A request body naming a
// refresh token revokes that token (idempotently); an empty body revokes
// every session of the authenticated user.
func (h *AuthHandler) RevokeHandler(c *gin.Context) {
	userID, ok := GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// An empty or absent body is a valid revoke-all request, so bind
	// failures just leave the token blank.
	var req dto.RevokeRequest
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := h.authUseCase.Revoke(c.Request.Context(), userID, req.RefreshToken); err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.RevokeResponse{Revoked: 1})
		return
	}

	count, err := h.authUseCase.RevokeAll(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RevokeResponse{Revoked: count})
}
