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

func (handler *Handler) SearchFoods(c *fiber.Ctx) error {
	if _, err := requireCurrentUser(c); err != nil {
		return err
	}

	var input foodSearchInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return validationError("query is required")
	}
	if handler.foods == nil {
		log.Printf("food search unavailable: %v", providers.ErrNotConfigured)
		return apiError(fiber.StatusBadGateway, "failed to fetch nutrition data")
	}

	foods, err := handler.foods.SearchFoods(c.UserContext(), query)
	if err != nil {
		log.Printf("food search for %q failed: %v", query, err)
		return apiError(fiber.StatusBadGateway, "failed to fetch nutrition data")
	}
	if foods == nil {
		foods = []providers.FoodSearchItem{}
	}
	return respond(c, fiber.StatusOK, foods, "Nutrition data fetched successfully")
}

func (handler *Handler) SaveNutrition(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	var input nutritionInput
	if err := parseJSONBody(c, &input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Date) == "" {
		return validationError("date and items array are required")
	}

	handler.ensureDependencies()
	record, err := handler.nutritionService.Save(user.ID, input.Date, input.Items)
	if err != nil {
		if mapped := dailyRecordInputError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("save nutrition: %w", err)
	}
	return respond(c, fiber.StatusOK, &record, "Nutrition saved successfully")
}

func (handler *Handler) GetNutritionByDate(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	record, err := handler.nutritionService.FindByDate(user.ID, c.Params("date"))
	if err != nil {
		if mapped := dailyRecordInputError(err); mapped != nil {
			return mapped
		}
		if errors.Is(err, services.ErrNutritionNotFound) {
			return apiError(fiber.StatusNotFound, "no nutrition data found for this date")
		}
		return fmt.Errorf("load nutrition: %w", err)
	}
	return respond(c, fiber.StatusOK, &record, "Nutrition data fetched successfully")
}

func (handler *Handler) ListNutrition(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	records, err := handler.nutritionService.List(user.ID)
	if err != nil {
		return fmt.Errorf("list nutrition: %w", err)
	}
	if records == nil {
		records = []models.NutritionRecord{}
	}
	return respond(c, fiber.StatusOK, records, "All nutrition records fetched successfully")
}

func (handler *Handler) DeleteNutrition(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	if err := handler.nutritionService.Delete(user.ID, recordID); err != nil {
		if errors.Is(err, services.ErrNutritionNotFound) {
			return apiError(fiber.StatusNotFound, "nutrition entry not found")
		}
		return fmt.Errorf("delete nutrition: %w", err)
	}
	return respond(c, fiber.StatusOK, nil, "Nutrition entry deleted successfully")
}
