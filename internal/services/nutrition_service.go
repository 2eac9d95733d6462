package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
)

var ErrNutritionNotFound = errors.New("nutrition record not found")

type NutritionRecordRepository interface {
	ListByUser(userID uint) ([]models.NutritionRecord, error)
	FindByUserAndDate(userID uint, date string) (models.NutritionRecord, bool, error)
	Upsert(record *models.NutritionRecord) error
	DeleteByUserAndID(userID uint, recordID uint) (bool, error)
}

type NutritionService struct {
	records  NutritionRecordRepository
	location *time.Location
}

func NewNutritionService(records NutritionRecordRepository, location *time.Location) *NutritionService {
	if location == nil {
		location = time.UTC
	}
	return &NutritionService{records: records, location: location}
}

// Save replaces the whole food list of the day and recomputes every total from it.
func (service *NutritionService) Save(userID uint, rawDate string, items []models.FoodItem) (models.NutritionRecord, error) {
	dateKey, err := CanonicalDateKey(rawDate, service.location)
	if err != nil {
		return models.NutritionRecord{}, err
	}
	normalized, err := NormalizeFoodItems(items)
	if err != nil {
		return models.NutritionRecord{}, err
	}

	totals := ComputeNutritionTotals(normalized)
	record := models.NutritionRecord{
		UserID:        userID,
		Date:          dateKey,
		Items:         normalized,
		TotalCalories: totals.Calories,
		TotalProtein:  totals.Protein,
		TotalFat:      totals.Fat,
		TotalCarbs:    totals.Carbs,
	}
	if err := service.records.Upsert(&record); err != nil {
		return models.NutritionRecord{}, fmt.Errorf("upsert nutrition record: %w", err)
	}
	return record, nil
}

func (service *NutritionService) FindByDate(userID uint, rawDate string) (models.NutritionRecord, error) {
	dateKey, err := CanonicalDateKey(rawDate, service.location)
	if err != nil {
		return models.NutritionRecord{}, err
	}
	record, found, err := service.records.FindByUserAndDate(userID, dateKey)
	if err != nil {
		return models.NutritionRecord{}, fmt.Errorf("load nutrition record: %w", err)
	}
	if !found {
		return models.NutritionRecord{}, ErrNutritionNotFound
	}
	return record, nil
}

func (service *NutritionService) List(userID uint) ([]models.NutritionRecord, error) {
	records, err := service.records.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list nutrition records: %w", err)
	}
	return records, nil
}

func (service *NutritionService) Delete(userID uint, recordID uint) error {
	deleted, err := service.records.DeleteByUserAndID(userID, recordID)
	if err != nil {
		return fmt.Errorf("delete nutrition record: %w", err)
	}
	if !deleted {
		return ErrNutritionNotFound
	}
	return nil
}
