package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
)

type DashboardDay struct {
	Date        string                 `json:"date"`
	Nutrition   models.NutritionRecord `json:"nutrition"`
	Workout     models.WorkoutRecord   `json:"workout"`
	NetCalories float64                `json:"netCalories"`
}

type nutritionDayFinder interface {
	FindByUserAndDate(userID uint, date string) (models.NutritionRecord, bool, error)
}

type workoutDayFinder interface {
	FindByUserAndDate(userID uint, date string) (models.WorkoutRecord, bool, error)
}

type DashboardService struct {
	nutrition nutritionDayFinder
	workouts  workoutDayFinder
	location  *time.Location
}

func NewDashboardService(nutrition nutritionDayFinder, workouts workoutDayFinder, location *time.Location) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{nutrition: nutrition, workouts: workouts, location: location}
}

// Day summarizes one calendar day. A missing record reads as zero totals.
func (service *DashboardService) Day(userID uint, rawDate string) (DashboardDay, error) {
	dateKey, err := CanonicalDateKey(rawDate, service.location)
	if err != nil {
		return DashboardDay{}, err
	}

	nutrition, found, err := service.nutrition.FindByUserAndDate(userID, dateKey)
	if err != nil {
		return DashboardDay{}, fmt.Errorf("load dashboard nutrition: %w", err)
	}
	if !found {
		nutrition = models.NutritionRecord{UserID: userID, Date: dateKey, Items: []models.FoodItem{}}
	}

	workout, found, err := service.workouts.FindByUserAndDate(userID, dateKey)
	if err != nil {
		return DashboardDay{}, fmt.Errorf("load dashboard workout: %w", err)
	}
	if !found {
		workout = models.WorkoutRecord{UserID: userID, Date: dateKey, Exercises: []models.Exercise{}}
	}

	return DashboardDay{
		Date:        dateKey,
		Nutrition:   nutrition,
		Workout:     workout,
		NetCalories: nutrition.TotalCalories - workout.TotalCaloriesBurned,
	}, nil
}
