package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
)

// NewApp builds the fiber application serving the swap API. estimate may be
// nil when no RPC endpoint is configured; /estimate is then not routed.
func NewApp(swap *SwapHandler, estimate *EstimateHandler) *fiber.App {
	app := fiber.New()

	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{fiber.HeaderContentType},
	}))

	app.Get("/api/hello_world", Hello())
	app.Post("/api/swap", swap.Handle())
	if estimate != nil {
		app.Get("/estimate", estimate.Handle())
	}

	return app
}
