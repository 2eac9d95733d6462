package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/models"
	"github.com/terraincognita07/fitlife/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openResetTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "fitlife-cli.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createResetTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	user := models.User{
		Name:                "Admin",
		Email:               email,
		PasswordHash:        "old-hash",
		ResetTokenHash:      "pending",
		ResetTokenExpiresAt: &expiresAt,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordPassesPolicy(t *testing.T) {
	t.Parallel()

	for round := 0; round < 20; round++ {
		password, err := generateTemporaryPassword(12)
		if err != nil {
			t.Fatalf("generateTemporaryPassword returned error: %v", err)
		}
		for _, char := range password {
			if !strings.ContainsRune(temporaryPasswordAlphabet, char) {
				t.Fatalf("password %q contains char %q outside alphabet", password, char)
			}
		}
		if err := services.ValidatePasswordStrength(password); err != nil {
			t.Fatalf("password %q fails policy: %v", password, err)
		}
	}
}

func TestRunResetPasswordCommandGeneratesTemporaryPassword(t *testing.T) {
	database := openResetTestDatabase(t)
	user := createResetTestUser(t, database, "admin@example.com")

	var out bytes.Buffer
	if err := RunResetPasswordCommand(database, " ADMIN@example.com ", nil, &out); err != nil {
		t.Fatalf("RunResetPasswordCommand returned error: %v", err)
	}

	var temporary string
	for _, line := range strings.Split(out.String(), "\n") {
		if value, ok := strings.CutPrefix(line, "Temporary password: "); ok {
			temporary = value
		}
	}
	if temporary == "" {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}

	var stored models.User
	if err := database.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(temporary)) != nil {
		t.Fatal("expected stored hash to match the printed temporary password")
	}
	if stored.HasPendingReset() {
		t.Fatal("expected pending reset token cleared")
	}
}

func TestRunResetPasswordCommandUsesPromptedPassword(t *testing.T) {
	database := openResetTestDatabase(t)
	user := createResetTestUser(t, database, "prompt@example.com")

	var out bytes.Buffer
	prompt := func() (string, error) { return "ChosenPass9", nil }
	if err := RunResetPasswordCommand(database, "prompt@example.com", prompt, &out); err != nil {
		t.Fatalf("RunResetPasswordCommand returned error: %v", err)
	}
	if strings.Contains(out.String(), "Temporary password") {
		t.Fatalf("did not expect a temporary password when prompted, got %q", out.String())
	}

	var stored models.User
	if err := database.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("ChosenPass9")) != nil {
		t.Fatal("expected stored hash to match the prompted password")
	}
}

func TestRunResetPasswordCommandRejectsWeakPromptedPassword(t *testing.T) {
	database := openResetTestDatabase(t)
	createResetTestUser(t, database, "weak@example.com")

	prompt := func() (string, error) { return "weak", nil }
	err := RunResetPasswordCommand(database, "weak@example.com", prompt, &bytes.Buffer{})
	if !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRunResetPasswordCommandUnknownUser(t *testing.T) {
	database := openResetTestDatabase(t)

	err := RunResetPasswordCommand(database, "nobody@example.com", nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
