package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

var startedAt = time.Now()

// Health reports process liveness.
// GET /health
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"uptime":    time.Since(startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
