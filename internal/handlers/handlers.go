// Package handlers renders the server-side dashboard pages.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"tramites/internal/middleware"
)

// pageData merges the per-page data with the fields every layout render
// needs (title, auth state).
func pageData(c fiber.Ctx, title string, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["LoggedIn"] = middleware.IsAuthenticated(c)
	if email, ok := c.Locals("user_email").(string); ok {
		data["UserEmail"] = email
	}
	return data
}
