package api

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlife/internal/models"
	"github.com/terraincognita07/fitlife/internal/providers"
	"github.com/terraincognita07/fitlife/internal/services"
)

func (handler *Handler) SearchActivities(c *fiber.Ctx) error {
	if _, err := requireCurrentUser(c); err != nil {
		return err
	}

	var input activitySearchInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	activity := strings.TrimSpace(input.Activity)
	if activity == "" {
		return validationError("activity is required")
	}
	if input.Duration < 0 || input.Weight < 0 {
		return validationError("duration and weight must not be negative")
	}
	if handler.activities == nil {
		log.Printf("activity search unavailable: %v", providers.ErrNotConfigured)
		return apiError(fiber.StatusBadGateway, "failed to fetch workout data")
	}

	estimates, err := handler.activities.CaloriesBurned(c.UserContext(), activity, input.Duration, input.Weight)
	if err != nil {
		log.Printf("activity search for %q failed: %v", activity, err)
		return apiError(fiber.StatusBadGateway, "failed to fetch workout data")
	}
	if estimates == nil {
		estimates = []providers.ActivityEstimate{}
	}
	return respond(c, fiber.StatusOK, estimates, "Workout data fetched successfully")
}

func (handler *Handler) SaveWorkout(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	var input workoutInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Date) == "" {
		return validationError("date and exercises array are required")
	}

	handler.ensureDependencies()
	record, err := handler.workoutService.Save(user.ID, input.Date, input.Exercises)
	if err != nil {
		if mapped := dailyRecordInputError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("save workout: %w", err)
	}
	return respond(c, fiber.StatusOK, &record, "Workout saved successfully")
}

func (handler *Handler) GetWorkoutByDate(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	record, err := handler.workoutService.FindByDate(user.ID, c.Params("date"))
	if err != nil {
		if mapped := dailyRecordInputError(err); mapped != nil {
			return mapped
		}
		if errors.Is(err, services.ErrWorkoutNotFound) {
			return apiError(fiber.StatusNotFound, "no workout data found for this date")
		}
		return fmt.Errorf("load workout: %w", err)
	}
	return respond(c, fiber.StatusOK, &record, "Workout data fetched successfully")
}

func (handler *Handler) ListWorkouts(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	records, err := handler.workoutService.List(user.ID)
	if err != nil {
		return fmt.Errorf("list workouts: %w", err)
	}
	if records == nil {
		records = []models.WorkoutRecord{}
	}
	return respond(c, fiber.StatusOK, records, "All workout records fetched successfully")
}

func (handler *Handler) DeleteWorkout(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	if err := handler.workoutService.Delete(user.ID, recordID); err != nil {
		if errors.Is(err, services.ErrWorkoutNotFound) {
			return apiError(fiber.StatusNotFound, "workout entry not found")
		}
		return fmt.Errorf("delete workout: %w", err)
	}
	return respond(c, fiber.StatusOK, nil, "Workout entry deleted successfully")
}
