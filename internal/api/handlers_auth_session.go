package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		if mapped := passwordPolicyError(err); mapped != nil {
			return mapped
		}
		switch {
		case errors.Is(err, services.ErrRegistrationInvalid):
			return validationError("name, email and password are required")
		case errors.Is(err, services.ErrDisplayNameTooLong):
			return validationError("name is too long")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return apiError(fiber.StatusConflict, "email already exists")
		default:
			return fmt.Errorf("register: %w", err)
		}
	}

	return respond(c, fiber.StatusCreated, &user, "Registration successful")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := authLimiterKey(c, "login")
	if handler.authThrottled(limiterKey) {
		return apiError(fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var input credentialsInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return validationError("email and password are required")
		case errors.Is(err, services.ErrInvalidCredentials):
			handler.recordAuthFailure(limiterKey)
			return apiError(fiber.StatusUnauthorized, "invalid credentials")
		default:
			return fmt.Errorf("login: %w", err)
		}
	}

	token, err := handler.issueSession(c, &user)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}
	handler.authLimiter.reset(limiterKey)

	return respond(c, fiber.StatusOK, sessionPayload{User: &user, AccessToken: token}, "Login successful")
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return respond(c, fiber.StatusOK, nil, "Logged out successfully")
}

func (handler *Handler) CheckAuth(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user, "User is authenticated")
}
