package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON error envelope shared by every handler.
// Details carries the underlying cause (e.g. an upstream provider's
// status text) when there is one worth exposing.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler turns unhandled errors into the shared envelope. Fiber
// errors keep their status code; anything else is a 500 with the cause
// in details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := ""

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else if err != nil {
		details = err.Error()
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   message,
		Details: details,
	})
}
