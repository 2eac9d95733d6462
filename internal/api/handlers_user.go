package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.Load(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apiError(fiber.StatusNotFound, "user not found")
		}
		return fmt.Errorf("load profile: %w", err)
	}
	return respond(c, fiber.StatusOK, &profile, "User profile fetched successfully")
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	var input profileInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}

	handler.ensureDependencies()
	updated, err := handler.profileService.UpdateProfile(user.ID, services.ProfileUpdate{
		Name:       input.Name,
		Email:      input.Email,
		ProfilePic: input.ProfilePic,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileNameRequired):
			return validationError("name cannot be empty")
		case errors.Is(err, services.ErrDisplayNameTooLong):
			return validationError("name is too long")
		case errors.Is(err, services.ErrProfileEmailInvalid):
			return validationError("a valid email is required")
		case errors.Is(err, services.ErrProfilePictureInvalid):
			return validationError("profile picture must be an http or https url")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return apiError(fiber.StatusConflict, "email already exists")
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(fiber.StatusNotFound, "user not found")
		default:
			return fmt.Errorf("update profile: %w", err)
		}
	}
	return respond(c, fiber.StatusOK, &updated, "Profile updated successfully")
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	var input changePasswordInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}

	handler.ensureDependencies()
	if err := handler.profileService.ChangePassword(user.ID, input.OldPassword, input.NewPassword); err != nil {
		if mapped := passwordPolicyError(err); mapped != nil {
			return mapped
		}
		switch {
		case errors.Is(err, services.ErrPasswordChangeInvalidInput):
			return validationError("old and new password are required")
		case errors.Is(err, services.ErrIncorrectOldPassword):
			return validationError("incorrect old password")
		case errors.Is(err, services.ErrNewPasswordMustDiffer):
			return validationError("new password must differ from the old one")
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(fiber.StatusNotFound, "user not found")
		default:
			return fmt.Errorf("change password: %w", err)
		}
	}
	return respond(c, fiber.StatusOK, nil, "Password updated successfully")
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	if err := handler.profileService.DeleteAccount(user.ID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apiError(fiber.StatusNotFound, "user not found")
		}
		return fmt.Errorf("delete account: %w", err)
	}

	handler.chatLimiter.forget(user.ID)
	handler.clearAuthCookie(c)
	return respond(c, fiber.StatusOK, nil, "Account and all data deleted successfully")
}
