package handlers

import (
	"errors"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/middleware"
	"github.com/MOSHEDORA/FinDora/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service     *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthHandler(db *database.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		service:     services.NewAuthService(db, cfg),
		userService: services.NewUserService(db),
		cfg:         cfg,
	}
}

func SetupAuthRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewAuthHandler(db, cfg)

	router.Post("/register", h.Register)
	router.Post("/login", h.Login)
	router.Get("/me", middleware.AuthRequired(cfg), h.GetMe)
}

// Register creates a user. The stored password never leaves the service:
// the user model serializes without it.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.Register(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login issues a token; unknown email and wrong password are both 401.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	response, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	return c.JSON(response)
}

// GetMe returns the authenticated user.
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	user, err := h.userService.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"user": user})
}
