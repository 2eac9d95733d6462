package db

import (
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).Where("email = ?", email).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// FindByActiveResetTokenHash only matches tokens whose expiry is strictly after now.
func (repo *UserRepository) FindByActiveResetTokenHash(tokenHash string, now time.Time) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("reset_token_hash = ? AND reset_token_hash <> '' AND reset_token_expires_at > ?", tokenHash, now).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdateResetToken(userID uint, tokenHash string, expiresAt *time.Time) error {
	return repo.UpdateByID(userID, map[string]any{
		"reset_token_hash":       tokenHash,
		"reset_token_expires_at": expiresAt,
	})
}

// UpdatePasswordAndClearReset writes the new hash and drops any pending reset token in one statement.
func (repo *UserRepository) UpdatePasswordAndClearReset(userID uint, passwordHash string) error {
	return repo.UpdateByID(userID, map[string]any{
		"password_hash":          passwordHash,
		"reset_token_hash":       "",
		"reset_token_expires_at": nil,
	})
}

// DeleteAccountAndRelatedData returns gorm.ErrRecordNotFound when the user row is already gone.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.NutritionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WorkoutRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
