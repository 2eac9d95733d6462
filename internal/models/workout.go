package models

import "time"

type Exercise struct {
	Name           string  `json:"name"`
	Duration       float64 `json:"duration"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

type WorkoutRecord struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"not null;uniqueIndex:uidx_workout_user_date" json:"userId"`
	Date                string     `gorm:"not null;uniqueIndex:uidx_workout_user_date" json:"date"`
	Exercises           []Exercise `gorm:"serializer:json" json:"exercises"`
	TotalCaloriesBurned float64    `gorm:"not null;default:0" json:"totalCaloriesBurned"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
