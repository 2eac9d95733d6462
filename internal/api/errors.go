package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error is the only error type handlers return for expected failures. Any
// other error reaching ErrorHandler becomes a logged 500.
type Error struct {
	Status  int
	Message string
	Errors  any
}

func (err *Error) Error() string {
	return err.Message
}

func apiError(status int, message string) error {
	return &Error{Status: status, Message: message}
}

func validationError(message string, details ...string) error {
	apiErr := &Error{Status: fiber.StatusBadRequest, Message: message}
	if len(details) > 0 {
		apiErr.Errors = details
	}
	return apiErr
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

// ErrorHandler renders every failure in the error envelope. Install it as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"
	var details any

	var apiErr *Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		message = apiErr.Message
		details = apiErr.Errors
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("request %s %s failed: %v", c.Method(), c.OriginalURL(), err)
	}

	return c.Status(status).JSON(errorEnvelope{
		Success: false,
		Message: message,
		Errors:  details,
	})
}
