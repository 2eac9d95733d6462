package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetAnalytics(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}
	days, err := parseAnalyticsDays(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	entries, err := handler.analyticsService.Trailing(user.ID, days)
	if err != nil {
		return fmt.Errorf("build analytics: %w", err)
	}
	return respond(c, fiber.StatusOK, entries, "Weekly analytics fetched")
}

func (handler *Handler) GetDashboardDay(c *fiber.Ctx) error {
	user, err := requireCurrentUser(c)
	if err != nil {
		return err
	}

	handler.ensureDependencies()
	day, err := handler.dashboardService.Day(user.ID, c.Params("date"))
	if err != nil {
		if mapped := dailyRecordInputError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("build dashboard day: %w", err)
	}
	return respond(c, fiber.StatusOK, &day, "Dashboard data fetched")
}
