package api

import (
	"github.com/terraincognita07/fitlife/internal/models"
	"github.com/terraincognita07/fitlife/internal/providers"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordInput struct {
	Email string `json:"email"`
}

type resetPasswordInput struct {
	Password string `json:"password"`
}

type profileInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	ProfilePic *string `json:"profilePic"`
}

type changePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type nutritionInput struct {
	Date  string            `json:"date"`
	Items []models.FoodItem `json:"items"`
}

type workoutInput struct {
	Date      string            `json:"date"`
	Exercises []models.Exercise `json:"exercises"`
}

type foodSearchInput struct {
	Query string `json:"query"`
}

type activitySearchInput struct {
	Activity string  `json:"activity"`
	Duration float64 `json:"duration"`
	Weight   float64 `json:"weight"`
}

type chatInput struct {
	History []providers.ChatMessage `json:"history"`
}

type sessionPayload struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}
