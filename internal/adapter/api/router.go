package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

func SetupRouter(app *fiber.App, handler *ChatHandler, log *slog.Logger) {
	// Middleware
	app.Use(RequestID())
	app.Use(AccessLog(log))

	api := app.Group("/api")

	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	api.Get("/readiness", handler.HandleReadiness)

	// Endpoints
	api.Post("/chat", handler.HandleChat)
	api.Post("/sms", handler.HandleSMS)
	api.Post("/extract/flights", handler.HandleExtractFlights)
}
