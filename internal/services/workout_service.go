package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
)

var ErrWorkoutNotFound = errors.New("workout record not found")

type WorkoutRecordRepository interface {
	ListByUser(userID uint) ([]models.WorkoutRecord, error)
	FindByUserAndDate(userID uint, date string) (models.WorkoutRecord, bool, error)
	Upsert(record *models.WorkoutRecord) error
	DeleteByUserAndID(userID uint, recordID uint) (bool, error)
}

type WorkoutService struct {
	records  WorkoutRecordRepository
	location *time.Location
}

func NewWorkoutService(records WorkoutRecordRepository, location *time.Location) *WorkoutService {
	if location == nil {
		location = time.UTC
	}
	return &WorkoutService{records: records, location: location}
}

func (service *WorkoutService) Save(userID uint, rawDate string, exercises []models.Exercise) (models.WorkoutRecord, error) {
	dateKey, err := CanonicalDateKey(rawDate, service.location)
	if err != nil {
		return models.WorkoutRecord{}, err
	}
	normalized, err := NormalizeExercises(exercises)
	if err != nil {
		return models.WorkoutRecord{}, err
	}

	record := models.WorkoutRecord{
		UserID:              userID,
		Date:                dateKey,
		Exercises:           normalized,
		TotalCaloriesBurned: ComputeCaloriesBurned(normalized),
	}
	if err := service.records.Upsert(&record); err != nil {
		return models.WorkoutRecord{}, fmt.Errorf("upsert workout record: %w", err)
	}
	return record, nil
}

func (service *WorkoutService) FindByDate(userID uint, rawDate string) (models.WorkoutRecord, error) {
	dateKey, err := CanonicalDateKey(rawDate, service.location)
	if err != nil {
		return models.WorkoutRecord{}, err
	}
	record, found, err := service.records.FindByUserAndDate(userID, dateKey)
	if err != nil {
		return models.WorkoutRecord{}, fmt.Errorf("load workout record: %w", err)
	}
	if !found {
		return models.WorkoutRecord{}, ErrWorkoutNotFound
	}
	return record, nil
}

func (service *WorkoutService) List(userID uint) ([]models.WorkoutRecord, error) {
	records, err := service.records.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list workout records: %w", err)
	}
	return records, nil
}

func (service *WorkoutService) Delete(userID uint, recordID uint) error {
	deleted, err := service.records.DeleteByUserAndID(userID, recordID)
	if err != nil {
		return fmt.Errorf("delete workout record: %w", err)
	}
	if !deleted {
		return ErrWorkoutNotFound
	}
	return nil
}
