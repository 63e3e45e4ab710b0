package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/healthdesk/healthinfo/internal/auth/usecase"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
	"github.com/healthdesk/healthinfo/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer access token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies it via AuthUseCase.VerifyAccessToken
// 3. Stores the authenticated user ID in the request context for GetUserID()
//
// A missing, malformed, or invalid token always yields the same 401 body.
// Malformed headers are logged at warning level since they usually indicate a
// broken client rather than an expired session.
func AuthenticationMiddleware(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Warn("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		accessToken := authHeader[len(bearerPrefix):]
		if accessToken == "" {
			logger.Warn("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		payload := authUC.VerifyAccessToken(c.Request.Context(), accessToken)
		if payload == nil {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithUserID(c.Request.Context(), payload.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
