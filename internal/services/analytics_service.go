package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitlife/internal/models"
)

const (
	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 90

	analyticsLabelLayout = "Jan 02"
)

var ErrAnalyticsDaysOutOfRange = errors.New("analytics days out of range")

type DailyAnalytics struct {
	Date           string  `json:"date"`
	DateKey        string  `json:"dateKey"`
	CaloriesIn     float64 `json:"caloriesIn"`
	CaloriesBurned float64 `json:"caloriesBurned"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	HasWorkout     bool    `json:"hasWorkout"`
}

type nutritionLister interface {
	ListByUser(userID uint) ([]models.NutritionRecord, error)
}

type workoutLister interface {
	ListByUser(userID uint) ([]models.WorkoutRecord, error)
}

type AnalyticsService struct {
	nutrition nutritionLister
	workouts  workoutLister
	location  *time.Location
	now       func() time.Time
}

func NewAnalyticsService(nutrition nutritionLister, workouts workoutLister, location *time.Location) *AnalyticsService {
	if location == nil {
		location = time.UTC
	}
	return &AnalyticsService{nutrition: nutrition, workouts: workouts, location: location, now: time.Now}
}

func ValidateAnalyticsDays(days int) error {
	if days < 1 || days > MaxAnalyticsDays {
		return ErrAnalyticsDaysOutOfRange
	}
	return nil
}

func (service *AnalyticsService) Trailing(userID uint, days int) ([]DailyAnalytics, error) {
	if err := ValidateAnalyticsDays(days); err != nil {
		return nil, err
	}

	nutrition, err := service.nutrition.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list nutrition for analytics: %w", err)
	}
	workouts, err := service.workouts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts for analytics: %w", err)
	}
	return BuildDailyAnalytics(nutrition, workouts, service.now(), days, service.location), nil
}

// BuildDailyAnalytics returns exactly days entries ordered oldest to newest,
// ending with today in location. Every row whose stored date canonicalizes to
// a day contributes to it, so duplicate rows are summed. Rows with an
// unreadable date are ignored.
func BuildDailyAnalytics(nutrition []models.NutritionRecord, workouts []models.WorkoutRecord, today time.Time, days int, location *time.Location) []DailyAnalytics {
	if days <= 0 {
		return []DailyAnalytics{}
	}
	if location == nil {
		location = time.UTC
	}

	nutritionKeys := make([]string, len(nutrition))
	for index, record := range nutrition {
		nutritionKeys[index], _ = CanonicalDateKey(record.Date, location)
	}
	workoutKeys := make([]string, len(workouts))
	for index, record := range workouts {
		workoutKeys[index], _ = CanonicalDateKey(record.Date, location)
	}

	todayStart := DateAtLocation(today, location)
	result := make([]DailyAnalytics, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := todayStart.AddDate(0, 0, -offset)
		entry := DailyAnalytics{
			Date:    day.Format(analyticsLabelLayout),
			DateKey: day.Format(DateKeyLayout),
		}

		for index, record := range nutrition {
			if nutritionKeys[index] != entry.DateKey {
				continue
			}
			entry.CaloriesIn += record.TotalCalories
			entry.Protein += record.TotalProtein
			entry.Carbs += record.TotalCarbs
			entry.Fat += record.TotalFat
		}
		for index, record := range workouts {
			if workoutKeys[index] != entry.DateKey {
				continue
			}
			entry.CaloriesBurned += record.TotalCaloriesBurned
			entry.HasWorkout = true
		}

		result = append(result, entry)
	}
	return result
}
