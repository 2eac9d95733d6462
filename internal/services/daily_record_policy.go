package services

import (
	"errors"
	"math"
	"strings"

	"github.com/terraincognita07/fitlife/internal/models"
)

var (
	ErrFoodItemsRequired = errors.New("food items required")
	ErrFoodItemInvalid   = errors.New("food item invalid")
	ErrExercisesRequired = errors.New("exercises required")
	ErrExerciseInvalid   = errors.New("exercise invalid")
)

type NutritionTotals struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

func validAmount(value float64) bool {
	return value >= 0 && !math.IsInf(value, 0) && !math.IsNaN(value)
}

// NormalizeFoodItems trims names and rejects blank names or negative amounts.
// A nil slice means the list was not sent at all; an empty one is a valid day.
func NormalizeFoodItems(items []models.FoodItem) ([]models.FoodItem, error) {
	if items == nil {
		return nil, ErrFoodItemsRequired
	}

	normalized := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, ErrFoodItemInvalid
		}
		if !validAmount(item.Calories) || !validAmount(item.Protein) || !validAmount(item.Fat) || !validAmount(item.Carbs) {
			return nil, ErrFoodItemInvalid
		}
		normalized = append(normalized, item)
	}
	return normalized, nil
}

func ComputeNutritionTotals(items []models.FoodItem) NutritionTotals {
	totals := NutritionTotals{}
	for _, item := range items {
		totals.Calories += item.Calories
		totals.Protein += item.Protein
		totals.Fat += item.Fat
		totals.Carbs += item.Carbs
	}
	return totals
}

func NormalizeExercises(exercises []models.Exercise) ([]models.Exercise, error) {
	if exercises == nil {
		return nil, ErrExercisesRequired
	}

	normalized := make([]models.Exercise, 0, len(exercises))
	for _, exercise := range exercises {
		exercise.Name = strings.TrimSpace(exercise.Name)
		if exercise.Name == "" || !validAmount(exercise.Duration) || !validAmount(exercise.CaloriesBurned) {
			return nil, ErrExerciseInvalid
		}
		normalized = append(normalized, exercise)
	}
	return normalized, nil
}

func ComputeCaloriesBurned(exercises []models.Exercise) float64 {
	total := 0.0
	for _, exercise := range exercises {
		total += exercise.CaloriesBurned
	}
	return total
}
