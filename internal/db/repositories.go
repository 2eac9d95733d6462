package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Nutrition *NutritionRepository
	Workouts  *WorkoutRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Nutrition: NewNutritionRepository(database),
		Workouts:  NewWorkoutRepository(database),
	}
}
