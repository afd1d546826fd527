// handlers/users.go
package handlers

import (
	"ecotrack/database"
	"ecotrack/middleware"
	"ecotrack/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// UpdateCurrentUser is an alias for the profile update; only the display
// name is mutable outside the achievement engine.
func UpdateCurrentUser(c *fiber.Ctx) error {
	return UpdateProfile(c)
}
