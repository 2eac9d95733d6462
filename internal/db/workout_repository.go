package db

import (
	"github.com/terraincognita07/fitlife/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkoutRepository struct {
	database *gorm.DB
}

func NewWorkoutRepository(database *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{database: database}
}

func (repo *WorkoutRepository) ListByUser(userID uint) ([]models.WorkoutRecord, error) {
	records := make([]models.WorkoutRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *WorkoutRepository) FindByUserAndDate(userID uint, date string) (models.WorkoutRecord, bool, error) {
	record := models.WorkoutRecord{}
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Limit(1).Find(&record)
	if result.Error != nil {
		return models.WorkoutRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WorkoutRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *WorkoutRepository) Upsert(record *models.WorkoutRecord) error {
	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"exercises", "total_calories_burned", "updated_at"}),
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

func (repo *WorkoutRepository) DeleteByUserAndID(userID uint, recordID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.WorkoutRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
