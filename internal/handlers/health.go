package handlers

import (
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports process liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// ReadyCheck reports readiness: the store must answer a ping.
func ReadyCheck(db *database.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}
