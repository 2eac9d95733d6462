package api

import (
	"context"
	"time"

	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/mailer"
	"github.com/terraincognita07/fitlife/internal/providers"
	"github.com/terraincognita07/fitlife/internal/services"
	"gorm.io/gorm"
)

type FoodSearcher interface {
	SearchFoods(ctx context.Context, query string) ([]providers.FoodSearchItem, error)
}

type ActivityEstimator interface {
	CaloriesBurned(ctx context.Context, activity string, durationMinutes float64, weight float64) ([]providers.ActivityEstimate, error)
}

type ChatCoach interface {
	Reply(ctx context.Context, history []providers.ChatMessage) (string, error)
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	clientURL    string
	now          func() time.Time

	mailer     mailer.Mailer
	foods      FoodSearcher
	activities ActivityEstimator
	coach      ChatCoach

	repositories     *db.Repositories
	authService      *services.AuthService
	profileService   *services.ProfileService
	nutritionService *services.NutritionService
	workoutService   *services.WorkoutService
	analyticsService *services.AnalyticsService
	dashboardService *services.DashboardService

	authLimiter *attemptLimiter
	chatLimiter *chatLimiter
}

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	ClientURL    string
	Mailer       mailer.Mailer
	Foods        FoodSearcher
	Activities   ActivityEstimator
	Coach        ChatCoach
}

const (
	authCookieName = "accessToken"
	contextUserKey = "current_user"

	maxAuthFailures   = 8
	authFailureWindow = 15 * time.Minute
)
