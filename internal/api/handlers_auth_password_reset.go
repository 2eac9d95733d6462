package api

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/services"
)

func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	limiterKey := authLimiterKey(c, "forgot")
	if handler.authThrottled(limiterKey) {
		return apiError(fiber.StatusTooManyRequests, "too many reset requests, try again later")
	}

	var input forgotPasswordInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	handler.recordAuthFailure(limiterKey)

	handler.ensureDependencies()
	issue, err := handler.authService.IssuePasswordReset(input.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResetEmailRequired):
			return validationError("a valid email is required")
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(fiber.StatusNotFound, "user not found")
		default:
			return fmt.Errorf("issue password reset: %w", err)
		}
	}

	resetURL := handler.clientURL + "/reset-password/" + url.PathEscape(issue.Token)
	if err := handler.mailer.SendPasswordReset(c.UserContext(), issue.User.Email, resetURL); err != nil {
		log.Printf("password reset email to user %d failed: %v", issue.User.ID, err)
		if rollbackErr := handler.authService.RollbackPasswordReset(issue.User.ID); rollbackErr != nil {
			return fmt.Errorf("rollback password reset: %w", rollbackErr)
		}
		return apiError(fiber.StatusInternalServerError, "email could not be sent, please try again")
	}

	return respond(c, fiber.StatusOK, nil, "Reset link sent to your email")
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	var input resetPasswordInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}

	handler.ensureDependencies()
	if _, err := handler.authService.ResetPassword(c.Params("token"), input.Password); err != nil {
		if mapped := passwordPolicyError(err); mapped != nil {
			return mapped
		}
		switch {
		case errors.Is(err, services.ErrResetPasswordNeeded):
			return validationError("password is required")
		case errors.Is(err, services.ErrPasswordResetTokenInvalid):
			return validationError("invalid or expired token")
		default:
			return fmt.Errorf("reset password: %w", err)
		}
	}

	return respond(c, fiber.StatusOK, nil, "Password reset successful")
}
