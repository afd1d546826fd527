// handlers/activities.go
package handlers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ecotrack/database"
	"ecotrack/middleware"
	"ecotrack/models"
	"ecotrack/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LogActivityRequest struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Date  string  `json:"date"`
}

// LogActivity records a new activity and runs an achievement evaluation
// pass over the updated history, all inside one transaction so a failed
// write never leaves a partial unlock behind.
func LogActivity(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req LogActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	activityType := models.ActivityType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !services.IsValidType(activityType) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Unknown activity type: %s. Valid types are: %s", req.Type, validTypeList()),
		})
	}

	if req.Value < 0 || math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Value must be a non-negative number"})
	}

	activityDate := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid date format"})
		}
		activityDate = parsed
	}

	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}

	db := database.GetDB()

	var user models.User
	if err := db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	activity := models.Activity{
		UserID: userID,
		Type:   activityType,
		Value:  req.Value,
		Unit:   unit,
		Date:   activityDate,
	}

	var newlyUnlocked []services.Achievement
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		var activities []models.Activity
		if err := tx.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
			return err
		}

		newlyUnlocked, err = applyEvaluation(tx, &user, activities, time.Now())
		return err
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to log activity"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":        true,
		"activity":       activity,
		"newly_unlocked": achievementList(newlyUnlocked),
	})
}

// GetUserActivities returns the authenticated user's activity history
func GetUserActivities(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var activities []models.Activity
	if err := db.Where("user_id = ?", userID).Order("date DESC").Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch activities"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"activities": activities,
	})
}

// GetCarbon returns the user's total carbon footprint
func GetCarbon(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var activities []models.Activity
	if err := db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch activities"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"carbon":  services.TotalCarbon(activities),
	})
}

type LeaderboardEntry struct {
	UserID      uint    `json:"user_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalCarbon float64 `json:"total_carbon"`
}

// GetLeaderboard returns the 10 lowest-carbon users over the trailing
// 30 days. The factor table is inlined as a CASE expression so the sum
// happens in one aggregate query instead of loading every activity row.
func GetLeaderboard(c *fiber.Ctx) error {
	db := database.GetDB()

	caseExpr, caseArgs := factorCaseExpr()
	cutoff := time.Now().AddDate(0, 0, -30)

	query := fmt.Sprintf(`
		SELECT
			activities.user_id,
			users.name,
			users.email,
			SUM(activities.value * %s) AS total_carbon
		FROM activities
		JOIN users ON users.id = activities.user_id
		WHERE activities.date >= ?
		GROUP BY activities.user_id, users.name, users.email
		ORDER BY total_carbon ASC
		LIMIT 10
	`, caseExpr)

	args := append(caseArgs, cutoff)

	var entries []LeaderboardEntry
	if err := db.Raw(query, args...).Scan(&entries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch leaderboard"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
	})
}

// Helper functions

// applyEvaluation runs the achievement engine and persists its outcome:
// the new snapshot rows and the matching score in the same transaction.
func applyEvaluation(tx *gorm.DB, user *models.User, activities []models.Activity, now time.Time) ([]services.Achievement, error) {
	before := len(user.Achievements)
	newlyUnlocked := services.Evaluate(user, activities, now)

	if len(newlyUnlocked) == 0 {
		return nil, nil
	}

	for i := before; i < len(user.Achievements); i++ {
		if err := tx.Create(&user.Achievements[i]).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("achievement_points", user.AchievementPoints).Error; err != nil {
		return nil, err
	}

	return newlyUnlocked, nil
}

// achievementList keeps the response shape stable: an empty unlock delta
// serializes as [] rather than null.
func achievementList(achievements []services.Achievement) []services.Achievement {
	if achievements == nil {
		return []services.Achievement{}
	}
	return achievements
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", value)
}

func validTypeList() string {
	types := services.ValidTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func factorCaseExpr() (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString("CASE activities.type")
	for _, t := range services.ValidTypes() {
		b.WriteString(" WHEN ? THEN ?")
		args = append(args, string(t), services.Factor(t))
	}
	b.WriteString(" ELSE 0 END")

	return b.String(), args
}
