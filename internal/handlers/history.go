package handlers

import (
	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/middleware"
	"github.com/MOSHEDORA/FinDora/internal/services"
	"github.com/gofiber/fiber/v2"
)

type HistoryHandler struct {
	service *services.HistoryService
}

func NewHistoryHandler(db *database.DB) *HistoryHandler {
	return &HistoryHandler{service: services.NewHistoryService(db)}
}

func SetupHistoryRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewHistoryHandler(db)

	router.Use(middleware.AuthRequired(cfg))
	router.Get("/", h.List)
	router.Post("/", h.Add)
	router.Delete("/:id", h.Delete)
}

// List returns the user's search history, newest first.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	history, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load search history"})
	}

	return c.JSON(fiber.Map{"history": history})
}

// Add records one search.
func (h *HistoryHandler) Add(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req services.AddHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.Add(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save search history"})
	}

	return c.JSON(fiber.Map{"history": record})
}

// Delete removes one record by id.
func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	if err := h.service.Delete(userID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete search history"})
	}

	return c.JSON(fiber.Map{"success": true})
}
