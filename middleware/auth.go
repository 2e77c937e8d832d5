package middleware

import (
	"scrooge/config"
	"scrooge/utils"

	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractBearerToken(c.Get("Authorization"))
		if _, err := utils.ParseToken(token, cfg); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
