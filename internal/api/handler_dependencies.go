package api

import (
	"github.com/terraincognita07/fitlife/internal/db"
	"github.com/terraincognita07/fitlife/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.ensureDependencies()
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	repos := handler.repositories
	if handler.authService == nil {
		handler.authService = services.NewAuthService(repos.Users)
	}
	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(repos.Users)
	}
	if handler.nutritionService == nil {
		handler.nutritionService = services.NewNutritionService(repos.Nutrition, handler.location)
	}
	if handler.workoutService == nil {
		handler.workoutService = services.NewWorkoutService(repos.Workouts, handler.location)
	}
	if handler.analyticsService == nil {
		handler.analyticsService = services.NewAnalyticsService(repos.Nutrition, repos.Workouts, handler.location)
	}
	if handler.dashboardService == nil {
		handler.dashboardService = services.NewDashboardService(repos.Nutrition, repos.Workouts, handler.location)
	}
}
