package handler

import "github.com/gofiber/fiber/v3"

// Hello answers a static greeting, used by clients to check reachability.
func Hello() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello, World"})
	}
}
