package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/models"
)

type responseEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

func respond(c *fiber.Ctx, status int, data any, message string) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(status).JSON(responseEnvelope{
		StatusCode: status,
		Success:    true,
		Data:       data,
		Message:    message,
	})
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func requireCurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, apiError(fiber.StatusUnauthorized, "unauthorized request")
	}
	return user, nil
}
