package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrResetEmailRequired  = errors.New("reset email required")
	ErrResetPasswordNeeded = errors.New("reset password required")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	FindByActiveResetTokenHash(tokenHash string, now time.Time) (models.User, error)
	Create(user *models.User) error
	UpdateResetToken(userID uint, tokenHash string, expiresAt *time.Time) error
	UpdatePasswordAndClearReset(userID uint, passwordHash string) error
}

// PasswordResetIssue carries the plaintext token to the mailer. It is never persisted.
type PasswordResetIssue struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

func (service *AuthService) Register(nameRaw string, emailRaw string, passwordRaw string) (models.User, error) {
	name, email, password, err := NormalizeRegistrationInput(nameRaw, emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check registration email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(passwordHash)}
	if err := service.users.Create(&user); err != nil {
		// A concurrent registration can win the race past the existence check.
		if exists, lookupErr := service.users.ExistsByNormalizedEmail(email); lookupErr == nil && exists {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate reports ErrInvalidCredentials for both unknown emails and wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("load user by email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// IssuePasswordReset stores a fresh token digest, superseding any earlier one.
func (service *AuthService) IssuePasswordReset(emailRaw string) (PasswordResetIssue, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return PasswordResetIssue{}, ErrResetEmailRequired
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PasswordResetIssue{}, ErrUserNotFound
		}
		return PasswordResetIssue{}, fmt.Errorf("load user by email: %w", err)
	}

	token, tokenHash, err := GeneratePasswordResetToken()
	if err != nil {
		return PasswordResetIssue{}, fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := PasswordResetExpiry(service.now())
	if err := service.users.UpdateResetToken(user.ID, tokenHash, &expiresAt); err != nil {
		return PasswordResetIssue{}, fmt.Errorf("store reset token: %w", err)
	}

	user.ResetTokenHash = tokenHash
	user.ResetTokenExpiresAt = &expiresAt
	return PasswordResetIssue{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// RollbackPasswordReset returns the user to the no-token state after a failed delivery.
func (service *AuthService) RollbackPasswordReset(userID uint) error {
	if err := service.users.UpdateResetToken(userID, "", nil); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

// ResetPassword consumes the token. Unknown, consumed and expired tokens all
// yield ErrPasswordResetTokenInvalid.
func (service *AuthService) ResetPassword(rawToken string, passwordRaw string) (models.User, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return models.User{}, ErrPasswordResetTokenInvalid
	}
	password := strings.TrimSpace(passwordRaw)
	if password == "" {
		return models.User{}, ErrResetPasswordNeeded
	}

	now := service.now().UTC()
	user, err := service.users.FindByActiveResetTokenHash(HashPasswordResetToken(token), now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrPasswordResetTokenInvalid
		}
		return models.User{}, fmt.Errorf("load user by reset token: %w", err)
	}
	// Drivers compare stored timestamps as text, so the expiry is checked again here.
	if !IsPasswordResetActive(&user, now) {
		return models.User{}, ErrPasswordResetTokenInvalid
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordAndClearReset(user.ID, string(passwordHash)); err != nil {
		return models.User{}, fmt.Errorf("store reset password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return user, nil
}
