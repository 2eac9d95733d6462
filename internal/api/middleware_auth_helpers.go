package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/models"
	"github.com/terraincognita07/fitlife/internal/services"
)

// requestTokens lists the session cookie before the bearer header. Empty
// values are skipped.
func requestTokens(c *fiber.Ctx) []string {
	tokens := make([]string, 0, 2)
	if token := strings.TrimSpace(c.Cookies(authCookieName)); token != "" {
		tokens = append(tokens, token)
	}

	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		if token := strings.TrimSpace(header[len("Bearer "):]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// authenticateRequest accepts the first token that verifies. A stale cookie
// does not hide a valid bearer header.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokens := requestTokens(c)
	if len(tokens) == 0 {
		return nil, apiError(fiber.StatusUnauthorized, "unauthorized request")
	}

	handler.ensureDependencies()
	for _, rawToken := range tokens {
		claims, err := services.ParseSessionToken(handler.secretKey, rawToken, handler.now())
		if err != nil {
			continue
		}

		user, err := handler.authService.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("authenticate request: %w", err)
		}
		return &user, nil
	}
	return nil, apiError(fiber.StatusUnauthorized, "invalid access token")
}
