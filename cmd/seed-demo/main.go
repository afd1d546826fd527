// cmd/seed-demo - imports demo users and activities into a local SQLite
// database for frontend development without a running Postgres.
//
// Usage: seed-demo [data.json] [ecotrack.db]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"ecotrack/database"
	"ecotrack/models"
	"ecotrack/services"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type SeedActivity struct {
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	DaysAgo int     `json:"days_ago"`
}

type SeedUser struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Password   string         `json:"password"`
	Activities []SeedActivity `json:"activities"`
}

func main() {
	jsonPath := "./data/demo-users.json"
	dbPath := "./data/ecotrack.db"
	if len(os.Args) > 1 {
		jsonPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		dbPath = os.Args[2]
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var seeds []SeedUser
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d demo users\n\n", len(seeds))

	now := time.Now()
	imported := 0

	for _, seed := range seeds {
		fmt.Printf("Processing: %s\n", seed.Email)

		password := seed.Password
		if password == "" {
			password = "demo-password"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		user := models.User{
			Name:     seed.Name,
			Email:    seed.Email,
			Password: string(hashed),
		}
		if err := db.Where("email = ?", seed.Email).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.Email, err)
		}

		// Re-running the seeder must not double-unlock
		if err := db.Where("user_id = ?", user.ID).Find(&user.Achievements).Error; err != nil {
			log.Fatalf("Failed to load achievements for %s: %v", seed.Email, err)
		}

		var activities []models.Activity
		for _, sa := range seed.Activities {
			activityType := models.ActivityType(sa.Type)
			if !services.IsValidType(activityType) {
				log.Printf("Skipping unknown activity type %q for %s", sa.Type, seed.Email)
				continue
			}

			unit := sa.Unit
			if unit == "" {
				unit = "unit"
			}

			activities = append(activities, models.Activity{
				UserID: user.ID,
				Type:   activityType,
				Value:  sa.Value,
				Unit:   unit,
				Date:   now.AddDate(0, 0, -sa.DaysAgo),
			})
		}

		if len(activities) > 0 {
			if err := db.CreateInBatches(activities, 100).Error; err != nil {
				log.Fatalf("Failed to insert activities for %s: %v", seed.Email, err)
			}
		}

		// Unlock whatever the seeded history already earns so the demo
		// account opens with populated badges.
		var history []models.Activity
		if err := db.Where("user_id = ?", user.ID).Find(&history).Error; err != nil {
			log.Fatalf("Failed to load activities for %s: %v", seed.Email, err)
		}

		newly := services.Evaluate(&user, history, now)
		for i := range user.Achievements {
			if user.Achievements[i].ID == 0 {
				if err := db.Create(&user.Achievements[i]).Error; err != nil {
					log.Fatalf("Failed to create achievement for %s: %v", seed.Email, err)
				}
			}
		}
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("achievement_points", user.AchievementPoints).Error; err != nil {
			log.Fatalf("Failed to update points for %s: %v", seed.Email, err)
		}

		fmt.Printf("  %d activities, %d achievements unlocked\n", len(activities), len(newly))
		imported++
	}

	fmt.Printf("\nDone. Imported %d users into %s\n", imported, dbPath)
}
