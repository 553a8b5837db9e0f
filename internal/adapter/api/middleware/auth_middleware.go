package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"skillbarter/internal/domain/repository"
	"skillbarter/internal/infrastructure/auth"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/response"
)

type AuthMiddleware struct {
	tokens     *auth.TokenManager
	userRepo   repository.UserRepository
	cookieName string
}

func NewAuthMiddleware(tokens *auth.TokenManager, userRepo repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		userRepo:   userRepo,
		cookieName: cookieName,
	}
}

// Authenticate reads the session cookie, validates the token, and loads
// the authenticated user into the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", err))
		}

		claims, err := m.tokens.Validate(cookie.Value)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired session", err))
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), claims.UserID)
		if err != nil {
			// The token is valid but its subject no longer exists.
			return response.Error(c, errors.Unauthorized("User not found", err))
		}

		c.Set("uid", user.ID)
		c.Set("user", user)

		return next(c)
	}
}

// GetUserIDFromToken validates a raw session token. Used by the
// WebSocket handler, which authenticates before the upgrade.
func (m *AuthMiddleware) GetUserIDFromToken(ctx context.Context, token string) (string, error) {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		return "", err
	}

	if _, err := m.userRepo.GetByID(ctx, claims.UserID); err != nil {
		return "", err
	}

	return claims.UserID, nil
}
