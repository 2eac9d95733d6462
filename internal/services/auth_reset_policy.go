package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
	"github.com/terraincognita07/fitlife/internal/security"
)

const (
	PasswordResetTokenTTL = 10 * time.Minute

	resetTokenBytes = 20
)

// ErrPasswordResetTokenInvalid covers unknown, consumed and expired tokens alike.
var ErrPasswordResetTokenInvalid = errors.New("invalid or expired reset token")

// GeneratePasswordResetToken returns the plaintext token for the email link and
// the digest that is the only form ever persisted.
func GeneratePasswordResetToken() (string, string, error) {
	token, err := security.HexToken(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, HashPasswordResetToken(token), nil
}

func HashPasswordResetToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

func PasswordResetExpiry(now time.Time) time.Time {
	return now.UTC().Add(PasswordResetTokenTTL)
}

func IsPasswordResetActive(user *models.User, now time.Time) bool {
	if !user.HasPendingReset() {
		return false
	}
	return user.ResetTokenExpiresAt.After(now)
}
