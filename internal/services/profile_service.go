package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/terraincognita07/fitlife/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfileNameRequired        = errors.New("profile name required")
	ErrProfileEmailInvalid        = errors.New("profile email invalid")
	ErrProfilePictureInvalid      = errors.New("profile picture invalid")
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrIncorrectOldPassword       = errors.New("incorrect old password")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePasswordAndClearReset(userID uint, passwordHash string) error
	DeleteAccountAndRelatedData(userID uint) error
}

// ProfileUpdate leaves a field untouched when its pointer is nil.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	ProfilePic *string
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (service *ProfileService) Load(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

func (service *ProfileService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	current, err := service.Load(userID)
	if err != nil {
		return models.User{}, err
	}

	updates := make(map[string]any, 3)
	if update.Name != nil {
		name, err := NormalizeDisplayName(*update.Name)
		if err != nil {
			return models.User{}, err
		}
		if name == "" {
			return models.User{}, ErrProfileNameRequired
		}
		updates["name"] = name
	}
	if update.Email != nil {
		email := NormalizeAuthEmail(*update.Email)
		if email == "" {
			return models.User{}, ErrProfileEmailInvalid
		}
		if email != current.Email {
			exists, err := service.users.ExistsByNormalizedEmail(email)
			if err != nil {
				return models.User{}, fmt.Errorf("check profile email: %w", err)
			}
			if exists {
				return models.User{}, ErrEmailAlreadyExists
			}
			updates["email"] = email
		}
	}
	if update.ProfilePic != nil {
		picture, err := normalizeProfilePicture(*update.ProfilePic)
		if err != nil {
			return models.User{}, err
		}
		updates["profile_pic"] = picture
	}

	if len(updates) == 0 {
		return current, nil
	}
	if err := service.users.UpdateByID(userID, updates); err != nil {
		// A concurrent request can claim the address between the check and the write.
		if email, changing := updates["email"].(string); changing {
			if exists, lookupErr := service.users.ExistsByNormalizedEmail(email); lookupErr == nil && exists {
				return models.User{}, ErrEmailAlreadyExists
			}
		}
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return service.Load(userID)
}

func normalizeProfilePicture(raw string) (string, error) {
	picture := strings.TrimSpace(raw)
	if picture == "" {
		return "", nil
	}
	parsed, err := url.Parse(picture)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", ErrProfilePictureInvalid
	}
	return picture, nil
}

func (service *ProfileService) ChangePassword(userID uint, oldPasswordRaw string, newPasswordRaw string) error {
	oldPassword := strings.TrimSpace(oldPasswordRaw)
	newPassword := strings.TrimSpace(newPasswordRaw)
	if oldPassword == "" || newPassword == "" {
		return ErrPasswordChangeInvalidInput
	}

	user, err := service.Load(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrIncorrectOldPassword
	}
	if oldPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordAndClearReset(userID, string(passwordHash)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

func (service *ProfileService) DeleteAccount(userID uint) error {
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
