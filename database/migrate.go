// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"ecotrack/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes(db)

	log.Println("✅ All migrations completed successfully")
}

// Migrate applies the schema for all application models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.UserAchievement{},
	)
}

// createIndexes creates indexes the AutoMigrate tags don't cover
func createIndexes(db *gorm.DB) {
	log.Println("Creating indexes...")

	// Leaderboard aggregates activities by user over a trailing window
	db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_user_date ON activities(user_id, date DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date DESC)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_unlocked ON user_achievements(user_id, unlocked_at DESC)")

	log.Println("✅ Indexes created successfully")
}
