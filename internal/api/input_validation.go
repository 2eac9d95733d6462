package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/services"
)

const passwordRuleMessage = "password must be 8-72 characters and include upper case, lower case and a digit"

func parseJSONBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return validationError("request body is required")
	}
	if err := c.BodyParser(out); err != nil {
		return validationError("invalid request body")
	}
	return nil
}

func parseRecordID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, validationError("invalid record id")
	}
	return uint(id), nil
}

func parseAnalyticsDays(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return services.DefaultAnalyticsDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || services.ValidateAnalyticsDays(days) != nil {
		return 0, validationError("days must be between 1 and " + strconv.Itoa(services.MaxAnalyticsDays))
	}
	return days, nil
}

// passwordPolicyError maps password policy failures shared by register, reset and change flows.
func passwordPolicyError(err error) error {
	if errors.Is(err, services.ErrWeakPassword) || errors.Is(err, services.ErrPasswordTooLong) {
		return validationError("weak password", passwordRuleMessage)
	}
	return nil
}

// dailyRecordInputError returns nil for errors that are not input problems.
func dailyRecordInputError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDateKey):
		return validationError("invalid date", "date must be YYYY-MM-DD or an RFC 3339 timestamp")
	case errors.Is(err, services.ErrFoodItemsRequired):
		return validationError("date and items array are required")
	case errors.Is(err, services.ErrFoodItemInvalid):
		return validationError("invalid food item", "each item needs a name and non-negative calories and macros")
	case errors.Is(err, services.ErrExercisesRequired):
		return validationError("date and exercises array are required")
	case errors.Is(err, services.ErrExerciseInvalid):
		return validationError("invalid exercise", "each exercise needs a name and non-negative duration and calories")
	default:
		return nil
	}
}
