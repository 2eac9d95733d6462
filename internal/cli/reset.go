package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/security"
	"github.com/terraincognita07/fitlife/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	temporaryPasswordAttempts = 32
)

// RunResetPasswordCommand sets a new password for the account and clears any
// pending reset token. A nil prompt generates a temporary password instead.
func RunResetPasswordCommand(database *gorm.DB, email string, prompt PasswordPrompt, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	users := db.NewRepositories(database).Users
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	generated := prompt == nil
	var password string
	if generated {
		password, err = generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else {
		password, err = prompt()
		if err != nil {
			return fmt.Errorf("read new password: %w", err)
		}
		if err := services.ValidatePasswordStrength(password); err != nil {
			return fmt.Errorf("new password rejected: %w", err)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePasswordAndClearReset(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset successful for %s\n", normalizedEmail)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "Ask the user to change it after signing in.")
	}
	return nil
}

// generateTemporaryPassword draws until the result passes the password policy.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < temporaryPasswordAttempts; attempt++ {
		password, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
	return "", errors.New("could not generate a password matching the policy")
}
