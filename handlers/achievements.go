// handlers/achievements.go
package handlers

import (
	"time"

	"ecotrack/database"
	"ecotrack/middleware"
	"ecotrack/models"
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAchievements returns the user's unlocked achievements
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var unlocked []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Order("unlocked_at ASC").Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": unlocked,
	})
}

// GetAllAchievements reports the full catalog with per-entry unlock state
// and eligibility. Read-only: a badge whose predicate holds but was never
// committed by a check stays locked here.
func GetAllAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var activities []models.Activity
	if err := db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch activities"})
	}

	statuses := services.CatalogStatus(&user, activities, time.Now())

	return c.JSON(fiber.Map{
		"success":            true,
		"achievements":       statuses,
		"total_achievements": len(statuses),
		"unlocked_count":     len(user.Achievements),
		"achievement_points": user.AchievementPoints,
	})
}

// CheckAchievements re-runs the evaluation pass and persists any new unlocks
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var activities []models.Activity
	if err := db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch activities"})
	}

	var newlyUnlocked []services.Achievement
	err = db.Transaction(func(tx *gorm.DB) error {
		newlyUnlocked, err = applyEvaluation(tx, &user, activities, time.Now())
		return err
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"newly_unlocked":     achievementList(newlyUnlocked),
		"achievements":       user.Achievements,
		"achievement_points": user.AchievementPoints,
	})
}
