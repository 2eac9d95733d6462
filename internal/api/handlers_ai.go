package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/providers"
)

func (handler *Handler) Chat(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}
	if !handler.chatLimiter.allow(user.ID) {
		return apiError(fiber.StatusTooManyRequests, "too many chat requests, slow down")
	}

	var input chatInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	if err := providers.ValidateChatHistory(input.History); err != nil {
		return validationError("chat history is required", "each message needs role user or assistant and non-empty content")
	}
	if handler.coach == nil {
		log.Printf("ai chat unavailable: %v", providers.ErrNotConfigured)
		return apiError(fiber.StatusBadGateway, "failed to fetch AI response")
	}

	reply, err := handler.coach.Reply(c.UserContext(), input.History)
	if err != nil {
		log.Printf("ai chat for user %d failed: %v", user.ID, err)
		return apiError(fiber.StatusBadGateway, "failed to fetch AI response")
	}
	return respond(c, fiber.StatusOK, fiber.Map{"reply": reply}, "AI response fetched")
}
