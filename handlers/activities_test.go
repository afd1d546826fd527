package handlers

import (
	"math"
	"testing"
	"time"

	"ecotrack/database"
	"ecotrack/models"
)

func TestLogActivityUnlocksAchievements(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "biker@example.com")

	resp, body := doRequest(t, app, "POST", "/api/activity/log", token, map[string]interface{}{
		"type":  "biking",
		"value": 15,
		"unit":  "km",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("log status = %d, want 201 (%v)", resp.StatusCode, body)
	}

	activity := body["activity"].(map[string]interface{})
	if activity["type"] != "biking" {
		t.Errorf("activity type = %v, want biking", activity["type"])
	}
	if activity["public_id"] == "" || activity["public_id"] == nil {
		t.Error("activity should get a public id")
	}

	newly := body["newly_unlocked"].([]interface{})
	ids := map[string]bool{}
	for _, entry := range newly {
		ids[entry.(map[string]interface{})["id"].(string)] = true
	}
	if !ids["first_activity"] || !ids["biker_rookie"] {
		t.Errorf("newly_unlocked = %v, want first_activity and biker_rookie", ids)
	}
	if ids["biker_champ"] {
		t.Error("biker_champ should not unlock at 15 km")
	}

	var fresh models.User
	database.GetDB().Preload("Achievements").First(&fresh, user.ID)
	if fresh.AchievementPoints != 20 {
		t.Errorf("points = %d, want 20", fresh.AchievementPoints)
	}
	if len(fresh.Achievements) != 2 {
		t.Errorf("unlocked rows = %d, want 2", len(fresh.Achievements))
	}
}

func TestLogActivityValidation(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "user@example.com")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown type", map[string]interface{}{"type": "swimming", "value": 5}},
		{"negative value", map[string]interface{}{"type": "biking", "value": -1}},
		{"bad date", map[string]interface{}{"type": "biking", "value": 5, "date": "not-a-date"}},
	}

	for _, tt := range tests {
		resp, _ := doRequest(t, app, "POST", "/api/activity/log", token, tt.body)
		if resp.StatusCode != 400 {
			t.Errorf("%s: status = %d, want 400", tt.name, resp.StatusCode)
		}
	}

	// No partial writes on rejected requests
	var count int64
	database.GetDB().Model(&models.Activity{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected requests created %d activities", count)
	}
}

func TestLogActivityAcceptsDateFormats(t *testing.T) {
	app := setupTestApp(t)
	_, token := createTestUser(t, "user@example.com")

	for _, date := range []string{"2025-06-01", "2025-06-01T10:30:00Z"} {
		resp, body := doRequest(t, app, "POST", "/api/activity/log", token, map[string]interface{}{
			"type":  "food",
			"value": 1,
			"date":  date,
		})
		if resp.StatusCode != 201 {
			t.Errorf("date %q: status = %d, want 201 (%v)", date, resp.StatusCode, body)
		}
	}
}

func TestGetUserActivities(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "user@example.com")
	other, _ := createTestUser(t, "other@example.com")

	now := time.Now()
	seedActivity(t, user.ID, models.ActivityTransport, 10, now)
	seedActivity(t, user.ID, models.ActivityFood, 2, now.AddDate(0, 0, -1))
	seedActivity(t, other.ID, models.ActivityFlight, 500, now)

	resp, body := doRequest(t, app, "GET", "/api/activity/user", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	activities := body["activities"].([]interface{})
	if len(activities) != 2 {
		t.Errorf("returned %d activities, want 2 (own only)", len(activities))
	}
}

func TestGetCarbon(t *testing.T) {
	app := setupTestApp(t)
	user, token := createTestUser(t, "user@example.com")

	now := time.Now()
	seedActivity(t, user.ID, models.ActivityTransport, 100, now) // +21
	seedActivity(t, user.ID, models.ActivityRecycling, 50, now)  // -10

	resp, body := doRequest(t, app, "GET", "/api/activity/carbon", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	carbon := body["carbon"].(float64)
	if math.Abs(carbon-11) > 1e-9 {
		t.Errorf("carbon = %v, want 11", carbon)
	}
}

func TestLeaderboard(t *testing.T) {
	app := setupTestApp(t)
	high, token := createTestUser(t, "high@example.com")
	low, _ := createTestUser(t, "low@example.com")
	stale, _ := createTestUser(t, "stale@example.com")

	now := time.Now()
	seedActivity(t, high.ID, models.ActivityFlight, 1000, now)    // +130
	seedActivity(t, low.ID, models.ActivityRecycling, 100, now)   // -20
	seedActivity(t, stale.ID, models.ActivityRecycling, 500, now.AddDate(0, 0, -45))

	resp, body := doRequest(t, app, "GET", "/api/activity/leaderboard", token, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 (%v)", resp.StatusCode, body)
	}

	entries := body["leaderboard"].([]interface{})
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (stale user outside 30-day window)", len(entries))
	}

	first := entries[0].(map[string]interface{})
	second := entries[1].(map[string]interface{})
	if first["email"] != "low@example.com" {
		t.Errorf("rank 1 = %v, want the lowest-carbon user", first["email"])
	}
	if second["email"] != "high@example.com" {
		t.Errorf("rank 2 = %v, want the highest-carbon user", second["email"])
	}
	if first["total_carbon"].(float64) > second["total_carbon"].(float64) {
		t.Error("leaderboard not sorted ascending by carbon")
	}
}
