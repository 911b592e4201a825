package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected requires an HS256 bearer token signed with JWT_SECRET.
// Tokens are issued elsewhere; this service only verifies them.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Debug("rejected bearer token", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized: invalid or expired token"))
		},
	})
}
