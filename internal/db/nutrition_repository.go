package db

import (
	"github.com/terraincognita07/fitlife/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NutritionRepository struct {
	database *gorm.DB
}

func NewNutritionRepository(database *gorm.DB) *NutritionRepository {
	return &NutritionRepository{database: database}
}

func (repo *NutritionRepository) ListByUser(userID uint) ([]models.NutritionRecord, error) {
	records := make([]models.NutritionRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *NutritionRepository) FindByUserAndDate(userID uint, date string) (models.NutritionRecord, bool, error) {
	record := models.NutritionRecord{}
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Limit(1).Find(&record)
	if result.Error != nil {
		return models.NutritionRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.NutritionRecord{}, false, nil
	}
	return record, true, nil
}

// Upsert inserts the record or replaces items and totals of the existing
// (user_id, date) row in a single statement.
func (repo *NutritionRepository) Upsert(record *models.NutritionRecord) error {
	if err := repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"items", "total_calories", "total_protein", "total_fat", "total_carbs", "updated_at",
		}),
	}).Create(record).Error; err != nil {
		return err
	}

	stored, _, err := repo.FindByUserAndDate(record.UserID, record.Date)
	if err != nil {
		return err
	}
	*record = stored
	return nil
}

// DeleteByUserAndID reports false when no row owned by the user matched.
func (repo *NutritionRepository) DeleteByUserAndID(userID uint, recordID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.NutritionRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
