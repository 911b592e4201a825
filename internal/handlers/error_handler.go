package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escape a handler (unknown routes, body
// limits, rate limits, recovered panics) in the same shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Error(message))
}
