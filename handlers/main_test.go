package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecotrack/database"
	"ecotrack/middleware"
	"ecotrack/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the API routes against a fresh in-memory database and
// installs it as the package-global connection.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-0123456789-0123456789-0123456789")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	// cache=shared keeps the named in-memory database alive across the
	// pooled connections GORM opens.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.SetDB(db)

	app := fiber.New()

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register)
	authGroup.Post("/login", Login)
	authGroup.Put("/profile", middleware.AuthMiddleware, UpdateProfile)

	activityGroup := api.Group("/activity")
	activityGroup.Use(middleware.AuthMiddleware)
	activityGroup.Post("/log", LogActivity)
	activityGroup.Get("/user", GetUserActivities)
	activityGroup.Get("/carbon", GetCarbon)
	activityGroup.Get("/leaderboard", GetLeaderboard)

	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", GetAchievements)
	achievementGroup.Get("/all", GetAllAchievements)
	achievementGroup.Post("/check", CheckAchievements)

	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", GetCurrentUser)
	userGroup.Put("/me", UpdateCurrentUser)

	api.Get("/suggestions", GetSuggestions)

	return app
}

func createTestUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hashed),
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := generateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user, token
}

func seedActivity(t *testing.T, userID uint, typ models.ActivityType, value float64, date time.Time) {
	t.Helper()

	activity := models.Activity{
		UserID: userID,
		Type:   typ,
		Value:  value,
		Unit:   "unit",
		Date:   date,
	}
	if err := database.GetDB().Create(&activity).Error; err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()

	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("failed to parse response %q: %v", raw, err)
		}
	}

	return resp, parsed
}
