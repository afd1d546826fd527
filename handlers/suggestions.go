// handlers/suggestions.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

var suggestions = []string{
	"Use public transport instead of driving.",
	"Switch to LED bulbs.",
	"Eat less red meat.",
	"Dry clothes in sunlight, not a dryer.",
	"Use reusable water bottle.",
	"Turn off electricals when not in use.",
}

// GetSuggestions returns the static list of eco tips
func GetSuggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     true,
		"suggestions": suggestions,
	})
}
